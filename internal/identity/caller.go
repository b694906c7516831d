package identity

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// Caller is the already authorized identity behind a request. DoctorID and
// PatientID are set when the account owns the matching profile.
type Caller struct {
	UserID    uint
	Role      Role
	DoctorID  *uint
	PatientID *uint
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

func (c Caller) IsDoctor(doctorID uint) bool {
	return c.Role == RoleDoctor && c.DoctorID != nil && *c.DoctorID == doctorID
}

func (c Caller) IsPatient(patientID *uint) bool {
	return c.Role == RolePatient &&
		c.PatientID != nil &&
		patientID != nil &&
		*c.PatientID == *patientID
}
