package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authUC "github.com/tmnguyen/portfolio-api/internal/application/usecase/auth"
	"github.com/tmnguyen/portfolio-api/pkg/apperror"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

type AuthHandler struct {
	loginUseCase  *authUC.LoginUseCase
	logoutUseCase *authUC.LogoutUseCase
	logger        logger.Logger
}

func NewAuthHandler(loginUC *authUC.LoginUseCase, logoutUC *authUC.LogoutUseCase, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		loginUseCase:  loginUC,
		logoutUseCase: logoutUC,
		logger:        log,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for login", err))
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), authUC.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": output.AccessToken})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, ok := GetSessionIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("session not found in context"))
		return
	}

	if err := h.logoutUseCase.Execute(c.Request.Context(), sessionID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// Session echoes the verified identity; the client session watcher
// polls this to observe revocation without a reload.
func (h *AuthHandler) Session(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	resp := gin.H{"owner_id": ownerID}
	if exp, ok := GetSessionExpiryFromGinContext(c); ok {
		resp["expires_at"] = exp.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}
