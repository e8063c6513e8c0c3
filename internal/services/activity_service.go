package services

import (
	"github.com/AkshayGangurde12/farm-management-system/internal/db"
	"github.com/AkshayGangurde12/farm-management-system/internal/models"
)

// ActivityService reads the log of marketplace changes. Entries are written
// by the other services inside their own transactions.
type ActivityService struct {
	db *db.DB
}

func NewActivityService(database *db.DB) *ActivityService {
	return &ActivityService{db: database}
}

// List returns entries newest first.
func (s *ActivityService) List() []models.ActivityEntry {
	var entries []models.ActivityEntry
	_ = s.db.View(func(tx *db.Tx) error {
		entries = tx.Activity.All()
		return nil
	})
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}

func recordActivity(tx *db.Tx, entity models.EntityType, entityID int, action models.ActivityAction, details string) {
	tx.Activity.Insert(func(id int) models.ActivityEntry {
		return models.ActivityEntry{
			ID:         id,
			EntityType: string(entity),
			EntityID:   entityID,
			Action:     string(action),
			Details:    details,
			CreatedAt:  tx.Now(),
		}
	})
}
