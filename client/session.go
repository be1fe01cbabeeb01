package client

import (
	"context"
	"net/http"
	"time"
)

// SessionState is one observation of the admin session.
type SessionState struct {
	Active    bool
	OwnerID   string
	ExpiresAt time.Time
}

// GetSession checks the current token against /api/auth/session. A 401
// means the session was revoked or expired; that is a state, not an
// error.
func (c *Client) GetSession(ctx context.Context) (SessionState, error) {
	var out struct {
		OwnerID   string `json:"owner_id"`
		ExpiresAt string `json:"expires_at"`
	}
	err := c.do(ctx, http.MethodGet, "/api/auth/session", nil, &out)
	if err != nil {
		if isStatus(err, http.StatusUnauthorized) {
			return SessionState{Active: false}, nil
		}
		return SessionState{}, err
	}

	state := SessionState{Active: true, OwnerID: out.OwnerID}
	if out.ExpiresAt != "" {
		if exp, perr := time.Parse(time.RFC3339, out.ExpiresAt); perr == nil {
			state.ExpiresAt = exp
		}
	}
	return state, nil
}

// WatchSession polls the session endpoint at the given interval and
// sends state changes: the first observation, then only observations
// that differ from the last delivered one. It stops when ctx is
// cancelled or the stop function is called, then closes the channel.
// Transport errors are skipped; the next tick tries again.
func (c *Client) WatchSession(ctx context.Context, interval time.Duration) (<-chan SessionState, func()) {
	ch := make(chan SessionState, 1)
	ctx, cancel := context.WithCancel(ctx)

	go func() {
		defer close(ch)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var last SessionState
		var delivered bool
		for {
			state, err := c.GetSession(ctx)
			if err == nil {
				if !delivered || state != last {
					select {
					case ch <- state:
					case <-ctx.Done():
						return
					}
					last = state
					delivered = true
				}
				if !state.Active {
					return
				}
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, cancel
}
