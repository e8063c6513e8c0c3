package services

import (
	"time"

	"github.com/AkshayGangurde12/farm-management-system/internal/db"
	"github.com/AkshayGangurde12/farm-management-system/internal/models"

	"github.com/rs/zerolog"
)

// Marketplace bundles the services that share one store. It is built once
// by the composition root and handed to the router.
type Marketplace struct {
	Users    *UserService
	Sessions *SessionService
	Auth     *AuthService
	Products *ProductService
	Farmers  *FarmerService
	Farming  *FarmingService
	Activity *ActivityService
}

type MarketplaceOptions struct {
	SessionTTL time.Duration
	JWTSecret  string
	JWTTTL     time.Duration
}

func NewMarketplace(database *db.DB, opts MarketplaceOptions, logger zerolog.Logger) *Marketplace {
	return &Marketplace{
		Users:    NewUserService(database, logger),
		Sessions: NewSessionService(database, opts.SessionTTL, logger),
		Auth:     NewAuthService(opts.JWTSecret, opts.JWTTTL, logger),
		Products: NewProductService(database, logger),
		Farmers:  NewFarmerService(database, logger),
		Farming:  NewFarmingService(database, logger),
		Activity: NewActivityService(database),
	}
}

// Authenticate checks the credentials and opens a session for the user.
func (m *Marketplace) Authenticate(email, password string) (*models.Session, *models.User, error) {
	user, err := m.Users.Authenticate(&models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, nil, err
	}
	session, err := m.Sessions.Create(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

func (m *Marketplace) CurrentUser(token string) (*models.User, bool) {
	return m.Sessions.Lookup(token)
}

func (m *Marketplace) EndSession(token string) {
	m.Sessions.End(token)
}
