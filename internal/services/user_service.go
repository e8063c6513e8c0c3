package services

import (
	"fmt"

	"github.com/AkshayGangurde12/farm-management-system/internal/db"
	"github.com/AkshayGangurde12/farm-management-system/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	db     *db.DB
	logger zerolog.Logger
}

func NewUserService(database *db.DB, logger zerolog.Logger) *UserService {
	return &UserService{
		db:     database,
		logger: logger,
	}
}

// Register creates a user. Emails are compared exactly, so "A@x.com" and
// "a@x.com" are different accounts.
func (s *UserService) Register(req *models.SignupRequest) (*models.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("username, email, and password are required: %w", ErrMissingFields)
	}

	var user models.User
	err := s.db.Update(func(tx *db.Tx) error {
		if _, exists := tx.Users.Find(func(u models.User) bool { return u.Email == req.Email }); exists {
			return ErrDuplicateEmail
		}
		user = tx.Users.Insert(func(id int) models.User {
			return models.User{
				ID:        id,
				Username:  req.Username,
				Email:     req.Email,
				Password:  req.Password,
				CreatedAt: tx.Now(),
			}
		})
		recordActivity(tx, models.EntityUser, user.ID, models.ActionUserSignedUp, user.Username)
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("email", req.Email).Msg("Registration rejected")
		return nil, err
	}

	s.logger.Info().Int("user_id", user.ID).Str("email", user.Email).Msg("User registered successfully")
	return &user, nil
}

// Authenticate returns the first user whose email and password both match.
func (s *UserService) Authenticate(req *models.LoginRequest) (*models.User, error) {
	// Blank credentials can never match a stored pair.
	if req.Email == "" || req.Password == "" {
		s.logger.Warn().Str("email", req.Email).Msg("Failed authentication attempt")
		return nil, ErrInvalidCredentials
	}

	var user models.User
	var found bool
	_ = s.db.View(func(tx *db.Tx) error {
		user, found = tx.Users.Find(func(u models.User) bool {
			return u.Email == req.Email && u.Password == req.Password
		})
		return nil
	})
	if !found {
		s.logger.Warn().Str("email", req.Email).Msg("Failed authentication attempt")
		return nil, ErrInvalidCredentials
	}

	s.logger.Info().Int("user_id", user.ID).Str("email", user.Email).Msg("User authenticated successfully")
	return &user, nil
}

func (s *UserService) GetUserByID(userID int) (*models.User, error) {
	var user models.User
	var found bool
	_ = s.db.View(func(tx *db.Tx) error {
		user, found = tx.Users.Get(userID)
		return nil
	})
	if !found {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	return &user, nil
}
