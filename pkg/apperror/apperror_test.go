package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAuthMissing(t *testing.T) {
	appErr := NewAuthMissing()

	assert.True(t, errors.Is(appErr, ErrAuthMissing))
	assert.Equal(t, "No authorization header forwarded", appErr.Message)
	assert.Equal(t, http.StatusUnauthorized, ToHTTPStatus(appErr))
}

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ToHTTPStatus(NewNotFound("skill", "abc")))
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(NewInvalidInput("bad date", nil)))
	assert.Equal(t, http.StatusUnauthorized, ToHTTPStatus(NewUnauthorized("bad password", nil)))
	assert.Equal(t, http.StatusForbidden, ToHTTPStatus(NewPermissionDenied("not yours")))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(NewStoreFailure("insert failed", errors.New("boom"))))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(errors.New("unmapped")))
}

func TestNewStoreFailure_PassesStoreMessageThrough(t *testing.T) {
	appErr := NewStoreFailure("insert failed", errors.New("duplicate key value"))
	assert.Equal(t, "duplicate key value", appErr.Message)
}
