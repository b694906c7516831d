package main

import (
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// seed adds one doctor and one patient so a memory-backed server can be
// exercised right away. Templates and assignments go through the API.
func seed(store *memory.Store, log *zap.Logger) {
	doc := store.AddDoctor(models.Doctor{
		UserID:    2,
		FirstName: "Laura",
		LastName:  "Méndez",
		Specialty: "General practice",
		Workplace: "Sede Norte",
	})
	pat := store.AddPatient(models.Patient{
		UserID:    3,
		FirstName: "Carlos",
		LastName:  "Ríos",
		Document:  "CC 1020304050",
	})
	log.Info("demo data seeded",
		zap.Uint("doctor_id", doc.ID), zap.Uint("doctor_user_id", doc.UserID),
		zap.Uint("patient_id", pat.ID), zap.Uint("patient_user_id", pat.UserID),
	)
}
