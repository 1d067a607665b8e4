package dto

// PatientQuery filters the patient listing.
type PatientQuery struct {
	Search   string `form:"search"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// RegisterPatientRequest creates a patient record.
type RegisterPatientRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
}
