package constvars

const (
	ResponseUnknown = "unknown"

	SearchPatientsSuccessMessage = "get patients successfully"
	GetPatientSuccessMessage     = "get patient successfully"
	CreatePatientSuccessMessage  = "patient created successfully"
	UpdatePatientSuccessMessage  = "patient updated successfully"
	DeletePatientSuccessMessage  = "patient deleted successfully"

	DeletePatientConfirmationFormat = "Patient with ID %s deleted successfully."
)
