package auth

import (
	"context"

	"github.com/tmnguyen/portfolio-api/internal/application/service"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

type LogoutUseCase struct {
	sessions service.SessionStore
	logger   logger.Logger
}

func NewLogoutUseCase(sessions service.SessionStore, log logger.Logger) *LogoutUseCase {
	return &LogoutUseCase{sessions: sessions, logger: log}
}

// Execute revokes the session; a watcher polling the session endpoint
// observes the sign-out on its next check.
func (uc *LogoutUseCase) Execute(ctx context.Context, sessionID string) error {
	return uc.sessions.Revoke(ctx, sessionID)
}
