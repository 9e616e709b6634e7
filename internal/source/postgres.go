package source

import (
	"context"
	"fmt"
	"time"

	specs "github.com/chrisconley/trafficreport/specs"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// detectionRow is one row of traffic_data.
type detectionRow struct {
	ID            string    `gorm:"column:id;primaryKey"`
	SensorID      int       `gorm:"column:sensor_id;not null"`
	Direction     string    `gorm:"column:direction;not null"`
	VehicleType   string    `gorm:"column:vehicle_type"`
	VehicleHeight float64   `gorm:"column:vehicle_height"`
	Distance      float64   `gorm:"column:distance"`
	Timestamp     time.Time `gorm:"column:timestamp;not null;index"`
}

func (detectionRow) TableName() string {
	return "traffic_data"
}

func toRow(event specs.DetectionEventSpec) detectionRow {
	return detectionRow{
		ID:            event.ID,
		SensorID:      event.SensorID,
		Direction:     event.Direction,
		VehicleType:   event.VehicleType,
		VehicleHeight: event.Height,
		Distance:      event.Distance,
		Timestamp:     event.Timestamp.UTC(),
	}
}

func (r detectionRow) toSpec() specs.DetectionEventSpec {
	return specs.DetectionEventSpec{
		ID:          r.ID,
		SensorID:    r.SensorID,
		Direction:   r.Direction,
		VehicleType: r.VehicleType,
		Height:      r.VehicleHeight,
		Distance:    r.Distance,
		Timestamp:   r.Timestamp,
	}
}

// PostgresOptions tunes the connection pool.
type PostgresOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

// OpenPostgres connects to url and applies opts to the pool.
func OpenPostgres(url string, opts PostgresOptions, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if opts.AutoMigrate {
		if err := db.AutoMigrate(&detectionRow{}); err != nil {
			return nil, fmt.Errorf("failed to migrate traffic_data: %w", err)
		}
	}

	log.Info("Successfully connected to PostgreSQL", zap.Bool("auto_migrate", opts.AutoMigrate))
	return db, nil
}

// PostgresStore reads and writes detections in the traffic_data table.
type PostgresStore struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewPostgresStore(db *gorm.DB, log *zap.Logger) *PostgresStore {
	return &PostgresStore{db: db, log: log}
}

func (s *PostgresStore) Record(ctx context.Context, event specs.DetectionEventSpec) error {
	row := toRow(event)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert detection %s: %w", event.ID, err)
	}
	return nil
}

func (s *PostgresStore) FetchEvents(ctx context.Context, window specs.TimeWindowSpec) ([]specs.DetectionEventSpec, error) {
	var rows []detectionRow
	err := s.db.WithContext(ctx).
		Where("timestamp >= ? AND timestamp < ?", window.Start.UTC(), window.End.UTC()).
		Order("timestamp").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query detections %s..%s: %w",
			window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339), err)
	}

	events := make([]specs.DetectionEventSpec, len(rows))
	for i, row := range rows {
		events[i] = row.toSpec()
	}
	s.log.Debug("fetched detections",
		zap.Time("start", window.Start),
		zap.Time("end", window.End),
		zap.Int("count", len(events)),
	)
	return events, nil
}
