package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	projectUC "github.com/tmnguyen/portfolio-api/internal/application/usecase/project"
	"github.com/tmnguyen/portfolio-api/pkg/apperror"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

type ProjectHandler struct {
	projectUseCase *projectUC.ProjectUseCase
	logger         logger.Logger
}

func NewProjectHandler(uc *projectUC.ProjectUseCase, log logger.Logger) *ProjectHandler {
	return &ProjectHandler{projectUseCase: uc, logger: log}
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectUseCase.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for project", err))
		return
	}

	p, err := h.projectUseCase.Create(c.Request.Context(), projectUC.CreateProjectInput{
		OwnerID:        ownerID,
		Title:          req.Title,
		Description:    req.Description,
		Responsibility: req.Responsibility,
		ImageURL:       req.ImageURL,
		LiveLink:       req.LiveLink,
		RepoLink:       req.RepoLink,
		Tags:           req.Tags,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid project ID", err))
		return
	}

	if err := h.projectUseCase.Delete(c.Request.Context(), ownerID, id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
}
