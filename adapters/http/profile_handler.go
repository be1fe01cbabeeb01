package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	profileUC "github.com/tmnguyen/portfolio-api/internal/application/usecase/profile"
	"github.com/tmnguyen/portfolio-api/pkg/apperror"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		logger:         log,
	}
}

// GetProfile is the public read. A store with no profile yet responds
// with JSON null, not 404.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	p, err := h.profileUseCase.ExecuteGetProfile(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile update", err))
		return
	}

	p, err := h.profileUseCase.ExecuteUpsertProfile(c.Request.Context(), profileUC.UpsertProfileInput{
		OwnerID:   ownerID,
		FullName:  req.FullName,
		Title:     req.Title,
		Bio:       req.Bio,
		PhotoURL:  req.PhotoURL,
		ResumeURL: req.ResumeURL,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, p)
}
