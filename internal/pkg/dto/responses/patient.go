package responses

// PatientSummary is one row of a search result.
type PatientSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	BirthDate string `json:"birthDate"`
	Gender    string `json:"gender"`
}

// PatientDetail feeds the edit form, so missing contact data stays empty.
type PatientDetail struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	First  string `json:"first"`
	Middle string `json:"middle"`
	Last   string `json:"last"`
	Gender string `json:"gender"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Dob    string `json:"dob"`
}

type PatientSearchResult struct {
	Patients            []PatientSummary  `json:"patients"`
	Total               int               `json:"total"`
	CurrentSearchParams map[string]string `json:"currentSearchParams"`
	SelfLink            string            `json:"selfLink,omitempty"`
	NextLink            string            `json:"nextLink,omitempty"`
	PrevLink            string            `json:"prevLink,omitempty"`
	FirstLink           string            `json:"firstLink,omitempty"`
	LastLink            string            `json:"lastLink,omitempty"`
	HasNextPage         bool              `json:"hasNextPage"`
	HasPrevPage         bool              `json:"hasPrevPage"`
}

type DeletePatient struct {
	Message string `json:"message"`
}
