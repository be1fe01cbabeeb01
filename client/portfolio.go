package client

import (
	"context"
	"sync"

	"github.com/tmnguyen/portfolio-api/internal/domain/education"
	"github.com/tmnguyen/portfolio-api/internal/domain/experience"
	"github.com/tmnguyen/portfolio-api/internal/domain/profile"
	"github.com/tmnguyen/portfolio-api/internal/domain/project"
	"github.com/tmnguyen/portfolio-api/internal/domain/skill"
)

// Portfolio is the aggregate of every public section. Sections whose
// fetch failed are left at their zero value and recorded in Errors,
// keyed by section name.
type Portfolio struct {
	Profile    *profile.Profile
	Skills     []*skill.Skill
	Education  []*education.Entry
	Experience []*experience.Entry
	Projects   []*project.Project

	Errors map[string]error
}

// FetchPortfolio fetches all five sections concurrently. A failed
// section never fails the aggregate; the page renders what it got.
func (c *Client) FetchPortfolio(ctx context.Context) *Portfolio {
	out := &Portfolio{Errors: make(map[string]error)}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	fail := func(section string, err error) {
		mu.Lock()
		out.Errors[section] = err
		mu.Unlock()
	}

	wg.Add(5)
	go func() {
		defer wg.Done()
		p, err := c.GetProfile(ctx)
		if err != nil {
			fail("profile", err)
			return
		}
		out.Profile = p
	}()
	go func() {
		defer wg.Done()
		s, err := c.GetSkills(ctx)
		if err != nil {
			fail("skills", err)
			return
		}
		out.Skills = s
	}()
	go func() {
		defer wg.Done()
		e, err := c.GetEducation(ctx)
		if err != nil {
			fail("education", err)
			return
		}
		out.Education = e
	}()
	go func() {
		defer wg.Done()
		e, err := c.GetExperience(ctx)
		if err != nil {
			fail("experience", err)
			return
		}
		out.Experience = e
	}()
	go func() {
		defer wg.Done()
		p, err := c.GetProjects(ctx)
		if err != nil {
			fail("projects", err)
			return
		}
		out.Projects = p
	}()
	wg.Wait()

	return out
}
