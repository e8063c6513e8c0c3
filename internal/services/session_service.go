package services

import (
	"context"
	"time"

	"github.com/AkshayGangurde12/farm-management-system/internal/db"
	"github.com/AkshayGangurde12/farm-management-system/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SessionService keeps the server-side token -> user table that backs the
// browser login cookie.
type SessionService struct {
	db     *db.DB
	ttl    time.Duration
	logger zerolog.Logger
}

// NewSessionService returns a service whose sessions live for ttl. A ttl of
// zero means sessions last until logout.
func NewSessionService(database *db.DB, ttl time.Duration, logger zerolog.Logger) *SessionService {
	return &SessionService{
		db:     database,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *SessionService) Create(userID int) (*models.Session, error) {
	var session models.Session
	err := s.db.Update(func(tx *db.Tx) error {
		if _, ok := tx.Users.Get(userID); !ok {
			return ErrNotFound
		}
		now := tx.Now()
		session = models.Session{
			Token:     uuid.NewString(),
			UserID:    userID,
			CreatedAt: now,
		}
		if s.ttl > 0 {
			session.ExpiresAt = now.Add(s.ttl)
		}
		tx.Sessions[session.Token] = session
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Int("user_id", userID).Msg("Session started")
	return &session, nil
}

// Lookup resolves a token to its user. Expired sessions and sessions whose
// user is gone are dropped.
func (s *SessionService) Lookup(token string) (*models.User, bool) {
	if token == "" {
		return nil, false
	}

	var user models.User
	var ok bool
	_ = s.db.Update(func(tx *db.Tx) error {
		session, exists := tx.Sessions[token]
		if !exists {
			return nil
		}
		if session.Expired(tx.Now()) {
			delete(tx.Sessions, token)
			return nil
		}
		user, ok = tx.Users.Get(session.UserID)
		if !ok {
			delete(tx.Sessions, token)
		}
		return nil
	})
	if !ok {
		return nil, false
	}
	return &user, true
}

// End discards the session. Unknown tokens are ignored.
func (s *SessionService) End(token string) {
	_ = s.db.Update(func(tx *db.Tx) error {
		delete(tx.Sessions, token)
		return nil
	})
}

func (s *SessionService) PurgeExpired() int {
	var purged int
	_ = s.db.Update(func(tx *db.Tx) error {
		now := tx.Now()
		for token, session := range tx.Sessions {
			if session.Expired(now) {
				delete(tx.Sessions, token)
				purged++
			}
		}
		return nil
	})
	return purged
}

// StartCleanup purges expired sessions every interval until ctx is done.
func (s *SessionService) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 || s.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.PurgeExpired(); n > 0 {
					s.logger.Info().Int("sessions", n).Msg("Expired sessions purged")
				}
			}
		}
	}()
}
