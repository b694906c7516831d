package dto

type CreateAppointmentRequest struct {
	DoctorID  uint   `json:"doctor_id"`
	PatientID uint   `json:"patient_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Location  string `json:"location"`
	Reason    string `json:"reason"`
}

// UpdateAppointmentRequest replaces date, time, location and reason.
// DoctorID and PatientID are honoured for admins only.
type UpdateAppointmentRequest struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Location  string `json:"location"`
	Reason    string `json:"reason"`
	DoctorID  *uint  `json:"doctor_id"`
	PatientID *uint  `json:"patient_id"`
}

type SlotCheckResponse struct {
	Available bool `json:"available"`
}
