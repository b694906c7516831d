package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestCreateAppointmentUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentGormRepository(db)

	mock.ExpectQuery(`INSERT INTO "appointments"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})

	err := repo.CreateAppointment(context.Background(), &models.Appointment{
		DoctorID: 2, Date: "2025-10-06", Time: "08:00", Location: "Room 1", Kind: "appointment",
	})
	assert.True(t, httperr.IsSlotUnavailable(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAppointmentMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentGormRepository(db)

	mock.ExpectExec(`DELETE FROM "appointments"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteAppointment(context.Background(), 42)
	assert.True(t, httperr.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAppointmentMissingIsNotReinserted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentGormRepository(db)
	patientID := uint(3)

	mock.ExpectExec(`UPDATE "appointments" SET .*"id" = `).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateAppointment(context.Background(), &models.Appointment{
		ID: 42, DoctorID: 2, PatientID: &patientID, Date: "2025-10-06", Time: "08:30", Location: "Room 1",
	})
	assert.True(t, httperr.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAppointmentUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentGormRepository(db)

	mock.ExpectExec(`UPDATE "appointments"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})

	err := repo.UpdateAppointment(context.Background(), &models.Appointment{
		ID: 42, DoctorID: 2, Date: "2025-10-06", Time: "08:30", Location: "Room 1",
	})
	assert.True(t, httperr.IsSlotUnavailable(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAppointmentForUpdateLocksRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentGormRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "date", "time"}).
			AddRow(7, 2, "2025-10-06", "08:00"))

	ap, err := repo.GetAppointmentForUpdate(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "08:00", ap.Time)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindForUpdateNoMatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScheduleGormRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "doctor_slots" WHERE .*slot_date IS NULL AND weekday.* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	q, err := slot.NewQuery(2, "2025-10-06", "08:00")
	require.NoError(t, err)

	_, err = repo.FindForUpdate(context.Background(), q)
	assert.True(t, httperr.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDoctorNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDoctorGormRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "doctors"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetDoctor(context.Background(), 9)
	assert.True(t, httperr.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactorRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	tx := NewGormTransactor(db)
	repo := NewScheduleGormRepository(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "doctor_slots" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := tx.WithinTx(context.Background(), func(ctx context.Context) error {
		if err := repo.SaveSlot(ctx, &models.DoctorSlot{ID: 1, Status: "booked"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactorNestedCallsShareTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	tx := NewGormTransactor(db)
	repo := NewScheduleGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "doctor_slots" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "doctor_slots" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tx.WithinTx(context.Background(), func(ctx context.Context) error {
		if err := repo.SaveSlot(ctx, &models.DoctorSlot{ID: 1, Status: "available"}); err != nil {
			return err
		}
		return tx.WithinTx(ctx, func(ctx context.Context) error {
			return repo.SaveSlot(ctx, &models.DoctorSlot{ID: 2, Status: "booked"})
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
