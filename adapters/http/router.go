package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

type RouterConfig struct {
	Auth       *AuthHandler
	Profile    *ProfileHandler
	Skill      *SkillHandler
	Education  *EducationHandler
	Experience *ExperienceHandler
	Project    *ProjectHandler
	// Media is optional; with no bucket configured the upload route is
	// simply absent.
	Media  *MediaHandler
	AuthMW gin.HandlerFunc
	Logger logger.Logger
}

// NewRouter builds the route tree. Reads are public; every mutation on
// the same resource path sits behind the authorization gate.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware())
	router.Use(ErrorMiddleware(cfg.Logger))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		auth := api.Group("/auth")
		{
			auth.POST("/login", cfg.Auth.Login)
			auth.GET("/session", cfg.AuthMW, cfg.Auth.Session)
			auth.POST("/logout", cfg.AuthMW, cfg.Auth.Logout)
		}

		api.GET("/profile", cfg.Profile.GetProfile)
		api.PUT("/profile", cfg.AuthMW, cfg.Profile.UpsertProfile)

		api.GET("/skills", cfg.Skill.ListSkills)
		api.POST("/skills", cfg.AuthMW, cfg.Skill.CreateSkill)
		api.DELETE("/skills/:id", cfg.AuthMW, cfg.Skill.DeleteSkill)

		api.GET("/education", cfg.Education.ListEducation)
		api.POST("/education", cfg.AuthMW, cfg.Education.CreateEducation)
		api.DELETE("/education/:id", cfg.AuthMW, cfg.Education.DeleteEducation)

		api.GET("/experience", cfg.Experience.ListExperience)
		api.POST("/experience", cfg.AuthMW, cfg.Experience.CreateExperience)
		api.DELETE("/experience/:id", cfg.AuthMW, cfg.Experience.DeleteExperience)

		api.GET("/projects", cfg.Project.ListProjects)
		api.POST("/projects", cfg.AuthMW, cfg.Project.CreateProject)
		api.DELETE("/projects/:id", cfg.AuthMW, cfg.Project.DeleteProject)

		if cfg.Media != nil {
			api.POST("/media", cfg.AuthMW, cfg.Media.UploadMedia)
		}
	}

	return router
}
