package audit

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Sink persists one audit event.
type Sink interface {
	Log(ctx context.Context, ev Event) error
}

// Logger writes audit events to the audit_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	row := models.AuditLog{
		DoctorID: ev.DoctorID,
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: encodeMetadata(ev.Metadata),
	}
	return l.db.WithContext(ctx).Create(&row).Error
}

// ZapSink keeps the audit trail in the application log. Used when there is no database.
type ZapSink struct {
	log *zap.Logger
}

func NewZapSink(log *zap.Logger) *ZapSink {
	return &ZapSink{log: log}
}

func (s *ZapSink) Log(_ context.Context, ev Event) error {
	fields := []zap.Field{
		zap.String("action", ev.Action),
		zap.String("entity", ev.Entity),
	}
	if ev.EntityID != nil {
		fields = append(fields, zap.Uint("entity_id", *ev.EntityID))
	}
	if ev.DoctorID != nil {
		fields = append(fields, zap.Uint("doctor_id", *ev.DoctorID))
	}
	if ev.UserID != nil {
		fields = append(fields, zap.Uint("user_id", *ev.UserID))
	}
	if meta := encodeMetadata(ev.Metadata); meta != "" {
		fields = append(fields, zap.String("metadata", meta))
	}
	s.log.Info("audit", fields...)
	return nil
}

func encodeMetadata(metadata any) string {
	if metadata == nil {
		return ""
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}
