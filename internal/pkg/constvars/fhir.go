package constvars

const (
	ResourcePatient          = "Patient"
	ResourceBundle           = "Bundle"
	ResourceOperationOutcome = "OperationOutcome"
)

const (
	FhirNameUseUsual     = "usual"
	FhirNameUseOfficial  = "official"
	FhirNameUseTemp      = "temp"
	FhirNameUseNickname  = "nickname"
	FhirNameUseAnonymous = "anonymous"
	FhirNameUseOld       = "old"
	FhirNameUseMaiden    = "maiden"
)

var FhirNameUses = []string{
	FhirNameUseUsual,
	FhirNameUseOfficial,
	FhirNameUseTemp,
	FhirNameUseNickname,
	FhirNameUseAnonymous,
	FhirNameUseOld,
	FhirNameUseMaiden,
}

const (
	FhirGenderMale    = "male"
	FhirGenderFemale  = "female"
	FhirGenderOther   = "other"
	FhirGenderUnknown = "unknown"
)

var FhirGenders = []string{
	FhirGenderMale,
	FhirGenderFemale,
	FhirGenderOther,
	FhirGenderUnknown,
}

const (
	FhirContactPointSystemPhone = "phone"
	FhirContactPointSystemEmail = "email"
)

const (
	FhirLinkRelationSelf     = "self"
	FhirLinkRelationNext     = "next"
	FhirLinkRelationPrevious = "previous"
	FhirLinkRelationFirst    = "first"
	FhirLinkRelationLast     = "last"
)

// Search parameters understood by the FHIR server.
const (
	FhirSearchParamCount        = "_count"
	FhirSearchParamSort         = "_sort"
	FhirSearchParamID           = "_id"
	FhirSearchParamNameContains = "name:contains"
	FhirSearchParamTelecom      = "telecom"
	FhirSearchParamBirthdate    = "birthdate"
)

const (
	FhirSearchDefaultPageSize = "10"
	FhirSearchDefaultSort     = "-_lastUpdated"
)

// Query parameters that only carry paging state and are hidden from the
// re-displayed search filters.
var FhirPaginationOnlyParams = map[string]bool{
	"_count":          true,
	"_offset":         true,
	"_getpagesoffset": true,
	"_page":           true,
	"page":            true,
}

const (
	PatientFallbackName       = "No Name"
	PatientFallbackPhone      = "No Phone"
	PatientFallbackEmail      = "No Email"
	PatientFallbackGender     = "No Gender Mentioned"
	PatientFallbackBirthDate  = "No Birth Date"
	PatientDetailNotAvailable = "N/A"
)
