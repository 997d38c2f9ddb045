// Package datastore persists prediction runs to SQLite so successive runs
// can be compared without re-parsing CSV artifacts.
package datastore

import (
	"math"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/foodkinetics/shelflife-go/internal/conf"
	"github.com/foodkinetics/shelflife-go/internal/errors"
	"github.com/foodkinetics/shelflife-go/internal/shelflife"
)

// PredictionRecord is one persisted shelf-life prediction.
type PredictionRecord struct {
	ID            uint   `gorm:"column:id;primaryKey;autoIncrement"`
	CategoryCode  string `gorm:"index"`
	CategoryName  string
	ShelfLifeDays *float64 // nil when no mechanism had fitted parameters
	DominantModel string
	TemperatureC  float64
	DryWeight     float64
	Area          float64
	WVTR          float64
	CreatedAt     time.Time
}

// Store wraps the database handle.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the SQLite database at the configured
// path and migrates the schema.
func Open(path string) (*Store, error) {
	// Separate the directory and file name so the directory can be created
	dir, fileName := filepath.Split(path)
	if dir != "" {
		dir = conf.GetBasePath(dir)
	} else {
		dir = "."
	}
	absolutePath := filepath.Join(dir, fileName)

	db, err := gorm.Open(sqlite.Open(absolutePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("path", absolutePath).
			Build()
	}

	if err := db.AutoMigrate(&PredictionRecord{}); err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "auto-migrate").
			Build()
	}

	return &Store{db: db}, nil
}

// SavePredictions inserts one record per prediction, tagged with the
// scenario constants the run used.
func (s *Store) SavePredictions(predictions []shelflife.Prediction, sc shelflife.Scenario) error {
	records := make([]PredictionRecord, 0, len(predictions))
	for _, p := range predictions {
		record := PredictionRecord{
			CategoryCode:  string(p.Category),
			CategoryName:  p.Category.Name(),
			DominantModel: string(p.Dominant),
			TemperatureC:  sc.TemperatureC,
			DryWeight:     sc.DryWeight,
			Area:          sc.Area,
			WVTR:          sc.WVTR,
		}
		if p.Available && !math.IsNaN(p.Days) {
			days := p.Days
			record.ShelfLifeDays = &days
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil
	}

	if err := s.db.Create(&records).Error; err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("records", len(records)).
			Build()
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
