package persistence

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tmnguyen/portfolio-api/internal/application/service"
	"github.com/tmnguyen/portfolio-api/internal/domain/education"
	"github.com/tmnguyen/portfolio-api/internal/domain/experience"
	"github.com/tmnguyen/portfolio-api/internal/domain/profile"
	"github.com/tmnguyen/portfolio-api/internal/domain/project"
	"github.com/tmnguyen/portfolio-api/internal/domain/skill"
	"github.com/tmnguyen/portfolio-api/internal/domain/user"
	"github.com/tmnguyen/portfolio-api/pkg/apperror"
)

// MemoryStore is an in-memory implementation of every content
// capability. It backs the server when no database DSN is configured
// and doubles as the store in tests; every operation is counted so
// tests can assert that a code path never touched the store.
type MemoryStore struct {
	mu         sync.RWMutex
	profiles   []*profile.Profile
	skills     []*skill.Skill
	education  []*education.Entry
	experience []*experience.Entry
	projects   []*project.Project
	calls      map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{calls: make(map[string]int)}
}

func (m *MemoryStore) count(op string) {
	m.calls[op]++
}

// Calls returns how many times the named operation ran.
func (m *MemoryStore) Calls(op string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls[op]
}

// TotalCalls returns the number of store operations of any kind.
func (m *MemoryStore) TotalCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

// ProfileCount reports how many profile rows exist.
func (m *MemoryStore) ProfileCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.profiles)
}

// Profile capability

type memoryProfileStore struct{ m *MemoryStore }

func (m *MemoryStore) ProfileReader() profile.Reader        { return &memoryProfileStore{m: m} }
func (m *MemoryStore) ProfileWriters() profile.WriterFactory { return &memoryProfileStore{m: m} }

func (s *memoryProfileStore) WriterFor(ownerID uuid.UUID) profile.Writer {
	s.m.mu.Lock()
	s.m.count("profile.writer_for")
	s.m.mu.Unlock()
	return s
}

func (s *memoryProfileStore) Get(ctx context.Context) (*profile.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.count("profile.get")
	if len(s.m.profiles) == 0 {
		return nil, nil
	}
	cp := *s.m.profiles[0]
	return &cp, nil
}

func (s *memoryProfileStore) FindCurrent(ctx context.Context) (*profile.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.count("profile.find_current")
	if len(s.m.profiles) == 0 {
		return nil, nil
	}
	cp := *s.m.profiles[0]
	return &cp, nil
}

func (s *memoryProfileStore) Insert(ctx context.Context, p *profile.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.count("profile.insert")
	cp := *p
	s.m.profiles = append(s.m.profiles, &cp)
	return nil
}

func (s *memoryProfileStore) UpdateByID(ctx context.Context, p *profile.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.count("profile.update")
	for i := range s.m.profiles {
		if s.m.profiles[i].ID == p.ID {
			cp := *p
			s.m.profiles[i] = &cp
			return nil
		}
	}
	return apperror.NewNotFound("profile", p.ID.String())
}

// Skill capability

type memorySkillStore struct{ m *MemoryStore }

func (m *MemoryStore) SkillReader() skill.Reader         { return &memorySkillStore{m: m} }
func (m *MemoryStore) SkillWriters() skill.WriterFactory { return &memorySkillStore{m: m} }

func (s *memorySkillStore) WriterFor(ownerID uuid.UUID) skill.Writer {
	s.m.mu.Lock()
	s.m.count("skill.writer_for")
	s.m.mu.Unlock()
	return s
}

func (s *memorySkillStore) List(ctx context.Context) ([]*skill.Skill, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.count("skill.list")
	// Slice order is insertion order, which is the display contract.
	out := make([]*skill.Skill, len(s.m.skills))
	copy(out, s.m.skills)
	return out, nil
}

func (s *memorySkillStore) Insert(ctx context.Context, sk *skill.Skill) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.count("skill.insert")
	cp := *sk
	s.m.skills = append(s.m.skills, &cp)
	return nil
}

func (s *memorySkillStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.count("skill.delete")
	for i := range s.m.skills {
		if s.m.skills[i].ID == id {
			s.m.skills = append(s.m.skills[:i], s.m.skills[i+1:]...)
			return nil
		}
	}
	// Missing id is still success.
	return nil
}

// Education capability

type memoryEducationStore struct{ m *MemoryStore }

func (m *MemoryStore) EducationReader() education.Reader         { return &memoryEducationStore{m: m} }
func (m *MemoryStore) EducationWriters() education.WriterFactory { return &memoryEducationStore{m: m} }

func (s *memoryEducationStore) WriterFor(ownerID uuid.UUID) education.Writer {
	s.m.mu.Lock()
	s.m.count("education.writer_for")
	s.m.mu.Unlock()
	return s
}

func (s *memoryEducationStore) List(ctx context.Context) ([]*education.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.count("education.list")
	out := make([]*education.Entry, len(s.m.education))
	copy(out, s.m.education)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.After(out[j].StartDate)
	})
	return out, nil
}

func (s *memoryEducationStore) Insert(ctx context.Context, e *education.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.count("education.insert")
	cp := *e
	s.m.education = append(s.m.education, &cp)
	return nil
}

func (s *memoryEducationStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.count("education.delete")
	for i := range s.m.education {
		if s.m.education[i].ID == id {
			s.m.education = append(s.m.education[:i], s.m.education[i+1:]...)
			return nil
		}
	}
	return nil
}

// Experience capability

type memoryExperienceStore struct{ m *MemoryStore }

func (m *MemoryStore) ExperienceReader() experience.Reader         { return &memoryExperienceStore{m: m} }
func (m *MemoryStore) ExperienceWriters() experience.WriterFactory { return &memoryExperienceStore{m: m} }

func (s *memoryExperienceStore) WriterFor(ownerID uuid.UUID) experience.Writer {
	s.m.mu.Lock()
	s.m.count("experience.writer_for")
	s.m.mu.Unlock()
	return s
}

func (s *memoryExperienceStore) List(ctx context.Context) ([]*experience.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.count("experience.list")
	out := make([]*experience.Entry, len(s.m.experience))
	copy(out, s.m.experience)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.After(out[j].StartDate)
	})
	return out, nil
}

func (s *memoryExperienceStore) Insert(ctx context.Context, e *experience.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.count("experience.insert")
	cp := *e
	s.m.experience = append(s.m.experience, &cp)
	return nil
}

func (s *memoryExperienceStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.count("experience.delete")
	for i := range s.m.experience {
		if s.m.experience[i].ID == id {
			s.m.experience = append(s.m.experience[:i], s.m.experience[i+1:]...)
			return nil
		}
	}
	return nil
}

// Project capability

type memoryProjectStore struct{ m *MemoryStore }

func (m *MemoryStore) ProjectReader() project.Reader         { return &memoryProjectStore{m: m} }
func (m *MemoryStore) ProjectWriters() project.WriterFactory { return &memoryProjectStore{m: m} }

func (s *memoryProjectStore) WriterFor(ownerID uuid.UUID) project.Writer {
	s.m.mu.Lock()
	s.m.count("project.writer_for")
	s.m.mu.Unlock()
	return s
}

func (s *memoryProjectStore) List(ctx context.Context) ([]*project.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.count("project.list")
	out := make([]*project.Project, len(s.m.projects))
	copy(out, s.m.projects)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memoryProjectStore) Insert(ctx context.Context, p *project.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.count("project.insert")
	cp := *p
	s.m.projects = append(s.m.projects, &cp)
	return nil
}

func (s *memoryProjectStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.count("project.delete")
	for i := range s.m.projects {
		if s.m.projects[i].ID == id {
			s.m.projects = append(s.m.projects[:i], s.m.projects[i+1:]...)
			return nil
		}
	}
	return nil
}

// MemoryUserRepo is an in-memory user.Repository for the no-database
// dev mode and tests.
type MemoryUserRepo struct {
	mu    sync.RWMutex
	users map[string]*user.User
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[string]*user.User)}
}

func (r *MemoryUserRepo) Seed(u user.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := u
	r.users[u.Email] = &cp
}

func (r *MemoryUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[email]
	if !ok {
		return nil, apperror.NewUnauthorized("no user with this email", nil)
	}
	cp := *u
	return &cp, nil
}

// MemorySessionStore is an in-memory service.SessionStore.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]time.Time)}
}

var _ service.SessionStore = (*MemorySessionStore)(nil)

func (s *MemorySessionStore) Put(ctx context.Context, sessionID string, ownerID uuid.UUID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = time.Now().Add(ttl)
	return nil
}

func (s *MemorySessionStore) IsActive(ctx context.Context, sessionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	expiry, ok := s.sessions[sessionID]
	return ok && time.Now().Before(expiry), nil
}

func (s *MemorySessionStore) Revoke(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
