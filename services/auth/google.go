package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"auxin/models"
	"auxin/services/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// handshake is one in-flight Google sign-in. The result channel is the direct
// delivery path from the callback route; popupClosed is advisory only and
// never drives the outcome (a popup routinely closes as a side effect of a
// successful flow). resolveOnce guards the terminal transition: concurrent
// waiters, the store poll, the deadline, and the queue backstop can all reach
// it, but only the first runs the side effects. done broadcasts the stored
// outcome to every other waiter.
type handshake struct {
	state       string
	startedAt   time.Time
	result      chan models.GoogleAuthResult
	popupClosed bool

	resolveOnce sync.Once
	done        chan struct{}
	outcome     *models.AuthResponse
	outcomeErr  error
}

// GoogleStart opens a handshake: it issues a state, registers the pending
// entry the callback will target, schedules the backstop purge, and returns
// the provider URL for the popup.
func (s *DefaultAuthService) GoogleStart(ctx context.Context) (*GoogleStart, error) {
	h := &handshake{
		state:     uuid.New().String(),
		startedAt: time.Now(),
		result:    make(chan models.GoogleAuthResult, 1),
		done:      make(chan struct{}),
	}

	s.mu.Lock()
	s.pending[h.state] = h
	s.mu.Unlock()

	if s.Purger != nil {
		if err := s.Purger.SchedulePurge(h.state, h.startedAt.Add(s.Timeout)); err != nil {
			s.Logger.Warn("failed to schedule handshake purge", zap.Error(err))
		}
	}

	redirectURI := s.PortalBaseURL + "/auth/google/callback"
	return &GoogleStart{
		State:   h.state,
		AuthURL: s.AuthAPI.GoogleStartURL(h.state, redirectURI),
	}, nil
}

// GoogleDeliver feeds a completion signal into the handshake. The result is
// recorded in the shared store first so the poll path (or another instance)
// can find it, then handed to the waiter directly. Payloads without a
// recognized type are dropped and the handshake keeps waiting.
func (s *DefaultAuthService) GoogleDeliver(ctx context.Context, state string, result models.GoogleAuthResult) error {
	if !result.Recognized() {
		s.Logger.Debug("ignoring unrecognized auth result", zap.String("type", result.Type))
		return ErrUnrecognizedResult
	}

	s.mu.Lock()
	h, ok := s.pending[state]
	s.mu.Unlock()
	if !ok {
		return ErrHandshakeNotFound
	}

	if err := s.Results.Put(ctx, state, result); err != nil {
		s.Logger.Error("failed to store auth result", zap.Error(err))
	}

	select {
	case h.result <- result:
	default:
	}
	return nil
}

// GoogleWait blocks until one of the three signal paths resolves the
// handshake: direct delivery, a fresh store record found by the poll, or the
// overall timeout. The terminal transition runs exactly once no matter how
// many waiters share the state; a waiter whose sibling won observes the
// broadcast and returns the stored outcome instead of re-running the side
// effects.
func (s *DefaultAuthService) GoogleWait(ctx context.Context, state string) (*models.AuthResponse, error) {
	s.mu.Lock()
	h, ok := s.pending[state]
	s.mu.Unlock()
	if !ok {
		return nil, ErrHandshakeNotFound
	}

	ticker := time.NewTicker(s.PollInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(time.Until(h.startedAt.Add(s.Timeout)))
	defer deadline.Stop()

	for {
		select {
		case result := <-h.result:
			return s.resolve(ctx, h, result)

		case <-ticker.C:
			if result, ok := s.Results.Take(ctx, state); ok {
				return s.resolve(ctx, h, *result)
			}

		case <-h.done:
			return h.outcome, h.outcomeErr

		case <-deadline.C:
			return s.expire(ctx, h)

		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// resolve finalizes the handshake. Only the first caller runs the side
// effects: deregister and purge, then mutate session state and publish the
// event; later callers get the stored outcome. A success payload without a
// structurally valid user and token is treated as an error, never as a
// success.
func (s *DefaultAuthService) resolve(ctx context.Context, h *handshake, result models.GoogleAuthResult) (*models.AuthResponse, error) {
	h.resolveOnce.Do(func() {
		defer close(h.done)

		s.deregister(h.state)
		if err := s.Results.Purge(ctx, h.state); err != nil {
			s.Logger.Warn("failed to purge auth result", zap.Error(err))
		}

		if result.Type == models.GoogleAuthError {
			s.Bus.Publish(events.AuthEvent{Kind: events.KindGoogleAuthError, Error: result.Error})
			h.outcomeErr = fmt.Errorf("google sign-in failed: %s", result.Error)
			return
		}

		if !result.User.Valid() || result.Token == "" {
			s.Bus.Publish(events.AuthEvent{Kind: events.KindGoogleAuthError, Error: "malformed sign-in result"})
			h.outcomeErr = fmt.Errorf("google sign-in returned a malformed user or token")
			return
		}

		// Google sign-ins are always remembered; writing the persistent scope
		// clears the session scope.
		if err := s.Store.SetToken(ctx, result.User.ID, result.Token, true); err != nil {
			h.outcomeErr = err
			return
		}

		s.Logger.Info("google sign-in resolved",
			zap.String("userId", result.User.ID),
			zap.Duration("elapsed", time.Since(h.startedAt)),
		)
		s.Bus.Publish(events.AuthEvent{Kind: events.KindGoogleAuthSuccess, User: result.User})

		h.outcome = &models.AuthResponse{User: result.User, Token: result.Token, Remembered: true}
	})
	return h.outcome, h.outcomeErr
}

// expire ends the handshake on its deadline. It shares the terminal guard
// with resolve, so a delivery racing the deadline still yields one outcome
// and one published event.
func (s *DefaultAuthService) expire(ctx context.Context, h *handshake) (*models.AuthResponse, error) {
	h.resolveOnce.Do(func() {
		defer close(h.done)

		s.deregister(h.state)
		if err := s.Results.Purge(ctx, h.state); err != nil {
			s.Logger.Warn("failed to purge auth result on timeout", zap.Error(err))
		}
		s.Bus.Publish(events.AuthEvent{Kind: events.KindGoogleAuthError, Error: "sign-in timed out"})
		h.outcomeErr = ErrHandshakeTimeout
	})
	return h.outcome, h.outcomeErr
}

// GooglePopupClosed records that the client saw the popup close. Advisory
// only: closing the popup never resolves the handshake, it may simply be the
// tail end of a successful flow.
func (s *DefaultAuthService) GooglePopupClosed(state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.pending[state]
	if !ok {
		return ErrHandshakeNotFound
	}
	h.popupClosed = true
	return nil
}

// GoogleStatus reports whether a handshake is still pending and whether the
// popup was seen closing.
func (s *DefaultAuthService) GoogleStatus(state string) (*HandshakeStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.pending[state]
	if !ok {
		return &HandshakeStatus{Pending: false}, nil
	}
	return &HandshakeStatus{Pending: true, PopupClosed: h.popupClosed}, nil
}

// ExpireHandshake force-removes a pending handshake and its store record.
// The queue worker calls this as the backstop when a handshake was started
// but never waited on. An active waiter observes the expiry immediately.
func (s *DefaultAuthService) ExpireHandshake(ctx context.Context, state string) {
	s.mu.Lock()
	h, ok := s.pending[state]
	s.mu.Unlock()
	if ok {
		_, _ = s.expire(ctx, h)
		return
	}
	if err := s.Results.Purge(ctx, state); err != nil {
		s.Logger.Warn("failed to purge expired handshake result", zap.Error(err))
	}
}

func (s *DefaultAuthService) deregister(state string) {
	s.mu.Lock()
	delete(s.pending, state)
	s.mu.Unlock()
}
