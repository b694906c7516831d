package dto

type AssignTemplateRequest struct {
	TemplateID uint `json:"template_id"`
	DoctorID   uint `json:"doctor_id"`
	// Date pins the assignment to one day (YYYY-MM-DD).
	Date *string `json:"date"`
}

type UnassignTemplateResponse struct {
	Deleted int64 `json:"deleted"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}
