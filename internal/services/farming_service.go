package services

import (
	"fmt"

	"github.com/AkshayGangurde12/farm-management-system/internal/db"
	"github.com/AkshayGangurde12/farm-management-system/internal/models"

	"github.com/rs/zerolog"
)

type FarmingService struct {
	db     *db.DB
	logger zerolog.Logger
}

func NewFarmingService(database *db.DB, logger zerolog.Logger) *FarmingService {
	return &FarmingService{
		db:     database,
		logger: logger,
	}
}

// Add appends a farming type. Names are matched exactly and case-sensitively.
func (s *FarmingService) Add(name string) (*models.FarmingType, error) {
	if name == "" {
		return nil, fmt.Errorf("farming type name is required: %w", ErrMissingFields)
	}

	var ft models.FarmingType
	err := s.db.Update(func(tx *db.Tx) error {
		if _, exists := tx.FarmingTypes.Find(func(f models.FarmingType) bool { return f.Name == name }); exists {
			return ErrAlreadyExists
		}
		ft = tx.FarmingTypes.Insert(func(id int) models.FarmingType {
			return models.FarmingType{ID: id, Name: name}
		})
		recordActivity(tx, models.EntityFarmingType, ft.ID, models.ActionFarmingTypeCreated, ft.Name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("farming type %q: %w", name, err)
	}

	s.logger.Info().Int("farming_type_id", ft.ID).Str("name", ft.Name).Msg("Farming type added")
	return &ft, nil
}

func (s *FarmingService) List() []models.FarmingType {
	var types []models.FarmingType
	_ = s.db.View(func(tx *db.Tx) error {
		types = tx.FarmingTypes.All()
		return nil
	})
	return types
}
