package db

import (
	"sync"
	"time"

	"github.com/AkshayGangurde12/farm-management-system/internal/models"

	"github.com/rs/zerolog"
)

// DB holds every marketplace table in process memory. All reads and writes
// go through View or Update, which share one lock, so a check followed by an
// insert inside a single Update is atomic with respect to other requests.
type DB struct {
	mu sync.RWMutex
	tx *Tx
}

// Tx exposes the tables to a View or Update callback. It must not be
// retained after the callback returns.
type Tx struct {
	Users        *Table[models.User]
	Products     *Table[models.Product]
	Farmers      *Table[models.FarmerRecord]
	FarmingTypes *Table[models.FarmingType]
	Activity     *Table[models.ActivityEntry]
	Sessions     map[string]models.Session

	now func() time.Time
}

// Now returns the clock used for timestamps written in this transaction.
func (tx *Tx) Now() time.Time {
	return tx.now()
}

type Option func(*DB)

// WithClock replaces time.Now, mostly for tests that check expiry.
func WithClock(now func() time.Time) Option {
	return func(d *DB) {
		d.tx.now = now
	}
}

func InitDB(opts ...Option) *DB {
	d := &DB{
		tx: &Tx{
			Users:        NewTable[models.User](),
			Products:     NewTable[models.Product](),
			Farmers:      NewTable[models.FarmerRecord](),
			FarmingTypes: NewTable[models.FarmingType](),
			Activity:     NewTable[models.ActivityEntry](),
			Sessions:     make(map[string]models.Session),
			now:          time.Now,
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// View runs fn under the shared lock. fn must not modify the tables.
func (d *DB) View(fn func(tx *Tx) error) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return fn(d.tx)
}

// Update runs fn under the exclusive lock.
func (d *DB) Update(fn func(tx *Tx) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fn(d.tx)
}

// RunMigrations seeds the farming type catalog. It is a no-op when the
// catalog already has entries.
func RunMigrations(d *DB, logger zerolog.Logger) {
	_ = d.Update(func(tx *Tx) error {
		if tx.FarmingTypes.Len() > 0 {
			return nil
		}
		for _, name := range models.DefaultFarmingTypes {
			tx.FarmingTypes.Insert(func(id int) models.FarmingType {
				return models.FarmingType{ID: id, Name: name}
			})
		}
		return nil
	})
	logger.Info().Int("farming_types", len(models.DefaultFarmingTypes)).Msg("Catalog seeded")
}
