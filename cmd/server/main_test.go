package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tmnguyen/portfolio-api/pkg/apperror"
	"github.com/tmnguyen/portfolio-api/pkg/auth"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

func TestNewMemoryStores_SeedsOwnerFromEnv(t *testing.T) {
	t.Setenv("OWNER_EMAIL", "owner@example.com")
	t.Setenv("OWNER_PASSWORD", "dev_password_123")

	st := newMemoryStores(logger.NewNop())

	u, err := st.userRepo.FindByEmail(context.Background(), "owner@example.com")
	assert.NoError(t, err)
	assert.True(t, auth.CheckPasswordHash("dev_password_123", u.PasswordHash))
}

func TestNewMemoryStores_NoOwnerEnv(t *testing.T) {
	t.Setenv("OWNER_EMAIL", "")
	t.Setenv("OWNER_PASSWORD", "")

	st := newMemoryStores(logger.NewNop())

	_, err := st.userRepo.FindByEmail(context.Background(), "owner@example.com")
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
}
