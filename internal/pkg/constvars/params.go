package constvars

const (
	URLParamPatientID = "patient_id"
)

const (
	URLQueryParamName      = "name"
	URLQueryParamPhone     = "phone"
	URLQueryParamBirthdate = "birthdate"
	URLQueryParamID        = "id"
	URLQueryParamPageURL   = "pageUrl"
)
