package db

import (
	"time"

	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-queue/internal/config"
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

const legacyWaitingIndex = "idx_queue_waiting_user_salon"

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.IsProduction() {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	zlog.Info().Msg("database ready")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Salon{},
		&models.Service{},
		&models.QueueEntry{},
		&models.Visit{},
		&models.Offer{},
		&models.AuditLog{},
	); err != nil {
		return errors.Wrap(err, "migrate")
	}

	// the first waiting-entry index covered (user_id, status) only
	if m := db.Migrator(); m.HasIndex(&models.QueueEntry{}, legacyWaitingIndex) {
		if err := m.DropIndex(&models.QueueEntry{}, legacyWaitingIndex); err != nil {
			return errors.Wrap(err, "drop legacy waiting index")
		}
	}

	// rows created before the default existed
	db.Exec(`
        UPDATE salons
        SET operating_hours = '9 AM - 7 PM'
        WHERE operating_hours IS NULL OR operating_hours = ''
    `)

	return nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		zlog.Warn().Err(err).Msg("close database")
	}
}
