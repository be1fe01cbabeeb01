package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tmnguyen/portfolio-api/internal/domain/profile"
	"github.com/tmnguyen/portfolio-api/internal/domain/skill"
)

func newFakeServer(t *testing.T, failing map[string]bool) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	serve := func(path string, payload any) {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if failing[path] {
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": "store exploded"})
				return
			}
			json.NewEncoder(w).Encode(payload)
		})
	}

	serve("/api/profile", &profile.Profile{ID: uuid.New(), FullName: "Tam Nguyen", Title: "Software Engineer"})
	serve("/api/skills", []*skill.Skill{{ID: uuid.New(), Name: "Go"}})
	serve("/api/education", []map[string]any{{"id": uuid.New().String(), "institution": "HUST"}})
	serve("/api/experience", []map[string]any{{"id": uuid.New().String(), "company": "current-job"}})
	serve("/api/projects", []map[string]any{{"id": uuid.New().String(), "title": "portfolio-api"}})

	return httptest.NewServer(mux)
}

func TestFetchPortfolio_AllSectionsUp(t *testing.T) {
	srv := newFakeServer(t, nil)
	defer srv.Close()

	got := New(srv.URL).FetchPortfolio(context.Background())

	assert.Empty(t, got.Errors)
	assert.Equal(t, "Tam Nguyen", got.Profile.FullName)
	assert.Len(t, got.Skills, 1)
	assert.Len(t, got.Projects, 1)
}

func TestFetchPortfolio_OneSectionDown(t *testing.T) {
	srv := newFakeServer(t, map[string]bool{"/api/skills": true})
	defer srv.Close()

	got := New(srv.URL).FetchPortfolio(context.Background())

	// The broken section degrades to empty; everything else renders.
	assert.Len(t, got.Errors, 1)
	assert.Contains(t, got.Errors, "skills")
	assert.Empty(t, got.Skills)
	assert.NotNil(t, got.Profile)
	assert.Len(t, got.Education, 1)
	assert.Len(t, got.Experience, 1)
	assert.Len(t, got.Projects, 1)
}

func TestFetchPortfolio_ServerUnreachable(t *testing.T) {
	srv := newFakeServer(t, nil)
	srv.Close()

	got := New(srv.URL).FetchPortfolio(context.Background())

	assert.Len(t, got.Errors, 5)
	assert.Nil(t, got.Profile)
}

func TestGetProfile_Null(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/profile", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p, err := New(srv.URL).GetProfile(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestWatchSession_ObservesRevocation(t *testing.T) {
	ownerID := uuid.New().String()
	expiresAt := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	var revoked atomic.Bool

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/session", func(w http.ResponseWriter, r *http.Request) {
		if revoked.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"owner_id":   ownerID,
			"expires_at": expiresAt,
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL, WithToken("some-token"))
	ch, stop := c.WatchSession(context.Background(), 5*time.Millisecond)
	defer stop()

	first := <-ch
	assert.True(t, first.Active)
	assert.Equal(t, ownerID, first.OwnerID)

	// While the session is unchanged, repeated polls deliver nothing.
	time.Sleep(30 * time.Millisecond)
	select {
	case state := <-ch:
		t.Fatalf("unexpected state delivered while session unchanged: %+v", state)
	default:
	}

	revoked.Store(true)

	// The watcher reports the revocation and then shuts down.
	var last SessionState
	for state := range ch {
		last = state
		if !state.Active {
			break
		}
	}
	assert.False(t, last.Active)

	_, open := <-ch
	assert.False(t, open)
}
