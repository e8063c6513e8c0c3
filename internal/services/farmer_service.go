package services

import (
	"fmt"

	"github.com/AkshayGangurde12/farm-management-system/internal/db"
	"github.com/AkshayGangurde12/farm-management-system/internal/models"

	"github.com/rs/zerolog"
)

// FarmerService manages farmer registrations. Records are a shared ledger:
// any logged-in user may edit or delete any record.
type FarmerService struct {
	db     *db.DB
	logger zerolog.Logger
}

func NewFarmerService(database *db.DB, logger zerolog.Logger) *FarmerService {
	return &FarmerService{
		db:     database,
		logger: logger,
	}
}

func (s *FarmerService) Create(req *models.FarmerRequest) (*models.FarmerRecord, error) {
	var record models.FarmerRecord
	err := s.db.Update(func(tx *db.Tx) error {
		record = tx.Farmers.Insert(func(id int) models.FarmerRecord {
			return farmerFromRequest(id, req)
		})
		recordActivity(tx, models.EntityFarmer, record.ID, models.ActionFarmerRegistered, record.FarmerName)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create farmer: %w", err)
	}

	s.logger.Info().Int("farmer_id", record.ID).Str("farming_type", record.FarmingType).Msg("Farmer registered")
	return &record, nil
}

func (s *FarmerService) List() []models.FarmerRecord {
	var records []models.FarmerRecord
	_ = s.db.View(func(tx *db.Tx) error {
		records = tx.Farmers.All()
		return nil
	})
	return records
}

func (s *FarmerService) Get(id int) (*models.FarmerRecord, error) {
	var record models.FarmerRecord
	var found bool
	_ = s.db.View(func(tx *db.Tx) error {
		record, found = tx.Farmers.Get(id)
		return nil
	})
	if !found {
		return nil, fmt.Errorf("farmer %d: %w", id, ErrNotFound)
	}
	return &record, nil
}

// Update replaces every field of the record with the request's values.
func (s *FarmerService) Update(id int, req *models.FarmerRequest) (*models.FarmerRecord, error) {
	record := farmerFromRequest(id, req)
	err := s.db.Update(func(tx *db.Tx) error {
		if !tx.Farmers.Put(id, record) {
			return ErrNotFound
		}
		recordActivity(tx, models.EntityFarmer, id, models.ActionFarmerUpdated, record.FarmerName)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("farmer %d: %w", id, err)
	}

	s.logger.Info().Int("farmer_id", id).Msg("Farmer updated")
	return &record, nil
}

func (s *FarmerService) Delete(id int) error {
	err := s.db.Update(func(tx *db.Tx) error {
		record, ok := tx.Farmers.Get(id)
		if !ok {
			return ErrNotFound
		}
		tx.Farmers.Delete(id)
		recordActivity(tx, models.EntityFarmer, id, models.ActionFarmerDeleted, record.FarmerName)
		return nil
	})
	if err != nil {
		return fmt.Errorf("farmer %d: %w", id, err)
	}

	s.logger.Info().Int("farmer_id", id).Msg("Farmer deleted")
	return nil
}

func farmerFromRequest(id int, req *models.FarmerRequest) models.FarmerRecord {
	return models.FarmerRecord{
		ID:          id,
		FarmerName:  req.FarmerName,
		NationalID:  req.NationalID,
		Age:         req.Age,
		Gender:      req.Gender,
		Phone:       req.Phone,
		Address:     req.Address,
		FarmingType: req.FarmingType,
	}
}
