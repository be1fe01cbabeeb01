package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/tmnguyen/portfolio-api/adapters/persistence"
	"github.com/tmnguyen/portfolio-api/internal/application/service"
	authUC "github.com/tmnguyen/portfolio-api/internal/application/usecase/auth"
	educationUC "github.com/tmnguyen/portfolio-api/internal/application/usecase/education"
	experienceUC "github.com/tmnguyen/portfolio-api/internal/application/usecase/experience"
	profileUC "github.com/tmnguyen/portfolio-api/internal/application/usecase/profile"
	projectUC "github.com/tmnguyen/portfolio-api/internal/application/usecase/project"
	skillUC "github.com/tmnguyen/portfolio-api/internal/application/usecase/skill"
	"github.com/tmnguyen/portfolio-api/internal/domain/user"
	"github.com/tmnguyen/portfolio-api/pkg/auth"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

type APITestSuite struct {
	suite.Suite
	router   *gin.Engine
	mem      *persistence.MemoryStore
	sessions *persistence.MemorySessionStore

	testEmail string
	testPass  string
}

func TestAPI(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	appLogger := logger.NewNop()
	events := service.NewNoopPublisher()

	s.mem = persistence.NewMemoryStore()
	s.sessions = persistence.NewMemorySessionStore()

	s.testEmail = "owner@example.com"
	s.testPass = "api_test_password_123"
	hash, err := auth.HashPassword(s.testPass)
	s.Require().NoError(err)

	userRepo := persistence.NewMemoryUserRepo()
	userRepo.Seed(user.User{ID: uuid.New(), Email: s.testEmail, PasswordHash: hash})

	jwtSvc := auth.NewJWTService("api-test-secret", time.Hour)

	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, s.sessions, appLogger)
	logoutUseCase := authUC.NewLogoutUseCase(s.sessions, appLogger)

	s.router = NewRouter(RouterConfig{
		Auth:       NewAuthHandler(loginUseCase, logoutUseCase, appLogger),
		Profile:    NewProfileHandler(profileUC.NewProfileUseCase(s.mem.ProfileReader(), s.mem.ProfileWriters(), events, appLogger), appLogger),
		Skill:      NewSkillHandler(skillUC.NewSkillUseCase(s.mem.SkillReader(), s.mem.SkillWriters(), events, appLogger), appLogger),
		Education:  NewEducationHandler(educationUC.NewEducationUseCase(s.mem.EducationReader(), s.mem.EducationWriters(), events, appLogger), appLogger),
		Experience: NewExperienceHandler(experienceUC.NewExperienceUseCase(s.mem.ExperienceReader(), s.mem.ExperienceWriters(), events, appLogger), appLogger),
		Project:    NewProjectHandler(projectUC.NewProjectUseCase(s.mem.ProjectReader(), s.mem.ProjectWriters(), events, appLogger), appLogger),
		AuthMW:     AuthMiddleware(jwtSvc, s.sessions, appLogger),
		Logger:     appLogger,
	})
}

func (s *APITestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		err := json.NewEncoder(&buf).Encode(body)
		s.Require().NoError(err)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *APITestSuite) login() string {
	rr := s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": s.testEmail, "password": s.testPass})
	s.Require().Equal(http.StatusOK, rr.Code)

	var resp map[string]string
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.Require().NotEmpty(resp["access_token"])
	return resp["access_token"]
}

func (s *APITestSuite) Test_Login_WrongPassword() {
	rr := s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": s.testEmail, "password": "nope"})
	assert.Equal(s.T(), http.StatusUnauthorized, rr.Code)
}

func (s *APITestSuite) Test_Mutation_WithoutToken_NeverTouchesStore() {
	rr := s.do(http.MethodPut, "/api/profile", "", gin.H{"full_name": "Tam Nguyen"})

	assert.Equal(s.T(), http.StatusUnauthorized, rr.Code)

	var resp map[string]string
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(s.T(), "No authorization header forwarded", resp["error"])
	assert.Equal(s.T(), 0, s.mem.TotalCalls())
}

func (s *APITestSuite) Test_Mutation_WithGarbageToken() {
	rr := s.do(http.MethodPut, "/api/profile", "not.a.jwt", gin.H{"full_name": "Tam Nguyen"})

	assert.Equal(s.T(), http.StatusUnauthorized, rr.Code)
	assert.Equal(s.T(), 0, s.mem.TotalCalls())
}

func (s *APITestSuite) Test_Profile_Lifecycle() {
	// No profile yet: the read answers null, not 404.
	rr := s.do(http.MethodGet, "/api/profile", "", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	assert.Equal(s.T(), "null", rr.Body.String())

	token := s.login()

	rr = s.do(http.MethodPut, "/api/profile", token, gin.H{"full_name": "Tam Nguyen", "title": "Software Engineer"})
	s.Require().Equal(http.StatusOK, rr.Code)

	var created map[string]any
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &created))
	firstID := created["id"]
	s.Require().NotEmpty(firstID)

	rr = s.do(http.MethodPut, "/api/profile", token, gin.H{"full_name": "Tam Nguyen", "title": "Staff Engineer"})
	s.Require().Equal(http.StatusOK, rr.Code)

	var updated map[string]any
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(s.T(), firstID, updated["id"])
	assert.Equal(s.T(), 1, s.mem.ProfileCount())

	rr = s.do(http.MethodGet, "/api/profile", "", nil)
	s.Require().Equal(http.StatusOK, rr.Code)

	var got map[string]any
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(s.T(), "Staff Engineer", got["title"])
}

func (s *APITestSuite) Test_Profile_MissingFullName() {
	token := s.login()

	rr := s.do(http.MethodPut, "/api/profile", token, gin.H{"title": "Software Engineer"})

	assert.Equal(s.T(), http.StatusBadRequest, rr.Code)
}

func (s *APITestSuite) Test_Skills_Flow() {
	token := s.login()

	for _, name := range []string{"Go", "Postgres", "Kafka"} {
		rr := s.do(http.MethodPost, "/api/skills", token, gin.H{"name": name})
		s.Require().Equal(http.StatusOK, rr.Code)
	}

	rr := s.do(http.MethodGet, "/api/skills", "", nil)
	s.Require().Equal(http.StatusOK, rr.Code)

	var skills []map[string]any
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &skills))
	s.Require().Len(skills, 3)
	assert.Equal(s.T(), "Go", skills[0]["name"])
	assert.Equal(s.T(), "Postgres", skills[1]["name"])
	assert.Equal(s.T(), "Kafka", skills[2]["name"])

	rr = s.do(http.MethodDelete, "/api/skills/"+skills[0]["id"].(string), token, nil)
	s.Require().Equal(http.StatusOK, rr.Code)

	// Deleting an id that no longer exists is still a success.
	rr = s.do(http.MethodDelete, "/api/skills/"+skills[0]["id"].(string), token, nil)
	assert.Equal(s.T(), http.StatusOK, rr.Code)

	var resp map[string]string
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(s.T(), "Deleted successfully", resp["message"])

	rr = s.do(http.MethodGet, "/api/skills", "", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &skills))
	assert.Len(s.T(), skills, 2)
}

func (s *APITestSuite) Test_Projects_NewestFirst() {
	token := s.login()

	for _, title := range []string{"older", "newer"} {
		rr := s.do(http.MethodPost, "/api/projects", token, gin.H{"title": title})
		s.Require().Equal(http.StatusOK, rr.Code)
		time.Sleep(2 * time.Millisecond)
	}

	rr := s.do(http.MethodGet, "/api/projects", "", nil)
	s.Require().Equal(http.StatusOK, rr.Code)

	var projects []map[string]any
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &projects))
	s.Require().Len(projects, 2)
	assert.Equal(s.T(), "newer", projects[0]["title"])
	assert.Equal(s.T(), "older", projects[1]["title"])
}

func (s *APITestSuite) Test_Education_BadStartDate() {
	token := s.login()

	rr := s.do(http.MethodPost, "/api/education", token, gin.H{
		"institution": "HUST",
		"start_date":  "09/2015",
	})

	assert.Equal(s.T(), http.StatusBadRequest, rr.Code)
}

func (s *APITestSuite) Test_Session_LogoutRevokes() {
	token := s.login()

	rr := s.do(http.MethodGet, "/api/auth/session", token, nil)
	s.Require().Equal(http.StatusOK, rr.Code)

	var sess map[string]any
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &sess))
	assert.NotEmpty(s.T(), sess["owner_id"])

	rr = s.do(http.MethodPost, "/api/auth/logout", token, nil)
	s.Require().Equal(http.StatusOK, rr.Code)

	// The token still parses, but its session is gone.
	rr = s.do(http.MethodGet, "/api/auth/session", token, nil)
	assert.Equal(s.T(), http.StatusUnauthorized, rr.Code)

	rr = s.do(http.MethodPut, "/api/profile", token, gin.H{"full_name": "Tam Nguyen"})
	assert.Equal(s.T(), http.StatusUnauthorized, rr.Code)
}
