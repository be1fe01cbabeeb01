package http

import (
	"fmt"
	"time"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName  string  `json:"full_name" binding:"required"`
	Title     string  `json:"title"`
	Bio       string  `json:"bio"`
	PhotoURL  *string `json:"photo_url"`
	ResumeURL *string `json:"resume_url"`
}

type CreateSkillRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	Level    string `json:"level"`
}

type CreateEducationRequest struct {
	Institution string  `json:"institution" binding:"required"`
	Degree      string  `json:"degree"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     *string `json:"end_date"`
	Description string  `json:"description"`
}

type CreateExperienceRequest struct {
	Company        string  `json:"company" binding:"required"`
	Role           string  `json:"role"`
	StartDate      string  `json:"start_date" binding:"required"`
	EndDate        *string `json:"end_date"`
	Description    string  `json:"description"`
	Responsibility *string `json:"responsibility"`
}

type CreateProjectRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description"`
	Responsibility *string  `json:"responsibility"`
	ImageURL       *string  `json:"image_url"`
	LiveLink       *string  `json:"live_link"`
	RepoLink       *string  `json:"repo_link"`
	Tags           []string `json:"tags"`
}

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	return t, nil
}

// parseOptionalDate treats nil and "" as "present".
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
