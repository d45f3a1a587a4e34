package requests

// PatientSearchQuery is either a fresh filter set or a continuation link.
// PageURL wins when both are set.
type PatientSearchQuery struct {
	Name      string `json:"name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	BirthDate string `json:"birthdate,omitempty"`
	ID        string `json:"id,omitempty"`
	PageURL   string `json:"pageUrl,omitempty"`
}

type CreatePatient struct {
	Use    string `json:"use" validate:"omitempty,name_use"`
	First  string `json:"first" validate:"required"`
	Middle string `json:"middle"`
	Last   string `json:"last" validate:"required"`
	Gender string `json:"gender" validate:"required,gender"`
	Phone  string `json:"phone"`
	Dob    string `json:"dob" validate:"omitempty,birth_date"`
}

// UpdatePatient carries a partial update. A nil field is left untouched.
// For Phone and Dob a non-nil empty value clears the stored element.
type UpdatePatient struct {
	Use    *string `json:"use,omitempty" validate:"omitempty,name_use"`
	First  *string `json:"first,omitempty"`
	Middle *string `json:"middle,omitempty"`
	Last   *string `json:"last,omitempty"`
	Gender *string `json:"gender,omitempty" validate:"omitempty,gender"`
	Phone  *string `json:"phone,omitempty"`
	Dob    *string `json:"dob,omitempty" validate:"omitempty,birth_date"`
}
