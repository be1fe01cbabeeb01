package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	experienceUC "github.com/tmnguyen/portfolio-api/internal/application/usecase/experience"
	"github.com/tmnguyen/portfolio-api/pkg/apperror"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

type ExperienceHandler struct {
	experienceUseCase *experienceUC.ExperienceUseCase
	logger            logger.Logger
}

func NewExperienceHandler(uc *experienceUC.ExperienceUseCase, log logger.Logger) *ExperienceHandler {
	return &ExperienceHandler{experienceUseCase: uc, logger: log}
}

func (h *ExperienceHandler) ListExperience(c *gin.Context) {
	entries, err := h.experienceUseCase.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *ExperienceHandler) CreateExperience(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req CreateExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for experience entry", err))
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid start_date", err))
		return
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid end_date", err))
		return
	}

	e, err := h.experienceUseCase.Create(c.Request.Context(), experienceUC.CreateEntryInput{
		OwnerID:        ownerID,
		Company:        req.Company,
		Role:           req.Role,
		StartDate:      startDate,
		EndDate:        endDate,
		Description:    req.Description,
		Responsibility: req.Responsibility,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *ExperienceHandler) DeleteExperience(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid experience ID", err))
		return
	}

	if err := h.experienceUseCase.Delete(c.Request.Context(), ownerID, id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
}
