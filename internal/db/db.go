package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Open connects to Postgres and sizes the pool.
func Open(cfg *config.Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.Env == "production" {
		level = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

// Migrate creates the tables and the constraints AutoMigrate cannot express.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(
		&models.Doctor{},
		&models.Patient{},
		&models.ScheduleTemplate{},
		&models.DoctorSlot{},
		&models.Appointment{},
		&models.HoldRequest{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range constraints {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply constraint: %w", err)
		}
	}

	log.Info("database migrated", zap.Int("constraints", len(constraints)))
	return nil
}

var constraints = []string{
	`CREATE INDEX IF NOT EXISTS idx_doctor_slots_pinned
		ON doctor_slots (doctor_id, slot_date)
		WHERE slot_date IS NOT NULL`,
	`DO $$ BEGIN
		ALTER TABLE doctor_slots
			ADD CONSTRAINT chk_doctor_slots_status CHECK (status IN ('available', 'booked'));
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`DO $$ BEGIN
		ALTER TABLE doctor_slots
			ADD CONSTRAINT fk_doctor_slots_doctor FOREIGN KEY (doctor_id) REFERENCES doctors (id) ON DELETE CASCADE;
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`DO $$ BEGIN
		ALTER TABLE appointments
			ADD CONSTRAINT fk_appointments_doctor FOREIGN KEY (doctor_id) REFERENCES doctors (id);
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`DO $$ BEGIN
		ALTER TABLE appointments
			ADD CONSTRAINT fk_appointments_patient FOREIGN KEY (patient_id) REFERENCES patients (id);
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`DO $$ BEGIN
		ALTER TABLE hold_requests
			ADD CONSTRAINT chk_hold_requests_status CHECK (status IN ('pending', 'approved', 'rejected'));
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
}
