package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	skillUC "github.com/tmnguyen/portfolio-api/internal/application/usecase/skill"
	"github.com/tmnguyen/portfolio-api/pkg/apperror"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

type SkillHandler struct {
	skillUseCase *skillUC.SkillUseCase
	logger       logger.Logger
}

func NewSkillHandler(uc *skillUC.SkillUseCase, log logger.Logger) *SkillHandler {
	return &SkillHandler{skillUseCase: uc, logger: log}
}

func (h *SkillHandler) ListSkills(c *gin.Context) {
	skills, err := h.skillUseCase.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, skills)
}

func (h *SkillHandler) CreateSkill(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req CreateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for skill", err))
		return
	}

	s, err := h.skillUseCase.Create(c.Request.Context(), skillUC.CreateSkillInput{
		OwnerID:  ownerID,
		Name:     req.Name,
		Category: req.Category,
		Level:    req.Level,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid skill ID", err))
		return
	}

	if err := h.skillUseCase.Delete(c.Request.Context(), ownerID, id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
}
