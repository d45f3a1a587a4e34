package constvars

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientPatientNotFound               = "patient not found"
	ErrClientPatientIDRequired             = "Patient ID is required"
	ErrClientInvalidPageURL                = "pageUrl must be a link issued by the FHIR server"
	ErrClientRequestBodyTooLarge           = "request body is too large"
	ErrClientPatientRequiredFields         = "first, last, and gender are required"
)

// Error messages for developers
const (
	ErrDevInvalidInput        = "invalid input"
	ErrDevValidationFailed    = "validation failed"
	ErrDevCannotParseJSON     = "cannot parse JSON"
	ErrDevCannotMarshalJSON   = "cannot marshal JSON"
	ErrDevCreateHTTPRequest   = "failed to create HTTP request"
	ErrDevSendHTTPRequest     = "failed to send HTTP request"
	ErrDevInvalidPageURL      = "page URL does not belong to the configured FHIR server"
	ErrDevServerProcess       = "server failed to process the request"
	ErrDevServerPanicRecovery = "recovered from panic"

	ErrDevFHIRGetResource          = "failed to get FHIR %s"
	ErrDevFHIRCreateResource       = "failed to create FHIR %s"
	ErrDevFHIRUpdateResource       = "failed to update FHIR %s"
	ErrDevFHIRDeleteResource       = "failed to delete FHIR %s"
	ErrDevFHIRResourceNotFound     = "FHIR %s not found"
	ErrDevFHIRDecodeResponse       = "failed to decode FHIR %s response"
	ErrDevFHIRUnexpectedStatusCode = "unexpected status code %d"
)

// Client messages built around the remote diagnostics
const (
	ErrClientFetchPatientsFormat = "Failed to fetch patients: %s"
	ErrClientFetchPatientFormat  = "Failed to retrieve patient from FHIR server: %s"
	ErrClientCreatePatientFormat = "Failed to create patient: %s"
	ErrClientUpdatePatientFormat = "Failed to update patient %s: %s"
	ErrClientDeletePatientFormat = "Failed to delete patient %s: %s"

	ErrClientUnreadableFHIRResponse = "unreadable response from FHIR server"
)

const (
	ErrFileLocationUnknown = "file location unknown"
	ErrFunctionNameUnknown = "function name unknown"
)
