package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	educationUC "github.com/tmnguyen/portfolio-api/internal/application/usecase/education"
	"github.com/tmnguyen/portfolio-api/pkg/apperror"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

type EducationHandler struct {
	educationUseCase *educationUC.EducationUseCase
	logger           logger.Logger
}

func NewEducationHandler(uc *educationUC.EducationUseCase, log logger.Logger) *EducationHandler {
	return &EducationHandler{educationUseCase: uc, logger: log}
}

func (h *EducationHandler) ListEducation(c *gin.Context) {
	entries, err := h.educationUseCase.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *EducationHandler) CreateEducation(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req CreateEducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for education entry", err))
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

	e, err := h.educationUseCase.Create(c.Request.Context(), educationUC.CreateEntryInput{
		OwnerID:     ownerID,
		Institution: req.Institution,
		Degree:      req.Degree,
		StartDate:   startDate,
		EndDate:     endDate,
		Description: req.Description,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *EducationHandler) DeleteEducation(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid education ID", err))
		return
	}

	if err := h.educationUseCase.Delete(c.Request.Context(), ownerID, id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
}
