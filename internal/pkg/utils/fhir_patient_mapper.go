package utils

import (
	"patient-service/internal/pkg/constvars"
	"patient-service/internal/pkg/dto/requests"
	"patient-service/internal/pkg/dto/responses"
	"patient-service/internal/pkg/exceptions"
	"patient-service/internal/pkg/fhir_dto"
	"strings"
)

// MapPatientToSummary projects a Patient into a search row. It returns nil
// when the resource is missing or is not a Patient.
func MapPatientToSummary(patient *fhir_dto.Patient) *responses.PatientSummary {
	if !patient.IsPatient() {
		return nil
	}

	summary := &responses.PatientSummary{
		ID:        patient.ID,
		Name:      withFallback(BuildPatientDisplayName(patient.FirstName()), constvars.PatientFallbackName),
		Gender:    withFallback(patient.Gender, constvars.PatientFallbackGender),
		BirthDate: withFallback(patient.BirthDate, constvars.PatientFallbackBirthDate),
	}
	phone, _ := patient.TelecomValue(constvars.FhirContactPointSystemPhone)
	summary.Phone = withFallback(phone, constvars.PatientFallbackPhone)
	email, _ := patient.TelecomValue(constvars.FhirContactPointSystemEmail)
	summary.Email = withFallback(email, constvars.PatientFallbackEmail)

	return summary
}

// MapPatientToDetail projects a Patient for the edit form. Contact data and
// the birth date fall back to empty strings.
func MapPatientToDetail(patient *fhir_dto.Patient) *responses.PatientDetail {
	detail := &responses.PatientDetail{
		Name:   constvars.PatientDetailNotAvailable,
		Gender: constvars.PatientDetailNotAvailable,
	}
	if patient == nil {
		return detail
	}

	detail.ID = patient.ID
	if len(patient.Name) > 0 {
		name := patient.Name[0]
		detail.Name = BuildPatientDisplayName(name)
		if len(name.Given) > 0 {
			detail.First = name.Given[0]
		}
		if len(name.Given) > 1 {
			detail.Middle = strings.Join(name.Given[1:], " ")
		}
		detail.Last = name.Family
	}
	if patient.Gender != "" {
		detail.Gender = patient.Gender
	}
	detail.Phone, _ = patient.TelecomValue(constvars.FhirContactPointSystemPhone)
	detail.Email, _ = patient.TelecomValue(constvars.FhirContactPointSystemEmail)
	detail.Dob = patient.BirthDate

	return detail
}

// BuildPatientDisplayName joins the given names and the family name.
func BuildPatientDisplayName(name fhir_dto.HumanName) string {
	parts := make([]string, 0, len(name.Given)+1)
	parts = append(parts, name.Given...)
	parts = append(parts, name.Family)
	return joinNonEmpty(parts...)
}

func BuildPatientFromCreateRequest(request *requests.CreatePatient) (*fhir_dto.Patient, error) {
	if request == nil {
		return nil, exceptions.ErrPatientValidation(nil, constvars.ErrClientPatientRequiredFields)
	}
	if err := ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	given := []string{request.First}
	if request.Middle != "" {
		given = append(given, request.Middle)
	}

	patient := &fhir_dto.Patient{
		ResourceType: constvars.ResourcePatient,
		Name: []fhir_dto.HumanName{
			{
				Use:    withFallback(request.Use, constvars.FhirNameUseOfficial),
				Given:  given,
				Family: request.Last,
				Text:   joinNonEmpty(request.First, request.Middle, request.Last),
			},
		},
		Gender:    request.Gender,
		Telecom:   []fhir_dto.ContactPoint{},
		BirthDate: request.Dob,
	}
	if request.Phone != "" {
		patient.Telecom = append(patient.Telecom, fhir_dto.ContactPoint{
			System: constvars.FhirContactPointSystemPhone,
			Value:  request.Phone,
		})
	}

	return patient, nil
}

// MergePatientUpdate applies a partial update on a copy of existing. The
// update is validated as a whole before anything is applied, and existing
// is never modified.
func MergePatientUpdate(existing *fhir_dto.Patient, updates *requests.UpdatePatient) (*fhir_dto.Patient, error) {
	if !existing.IsPatient() {
		return nil, exceptions.ErrFHIRResourceNotFound(nil, constvars.ResourcePatient)
	}
	if updates == nil {
		return existing.Clone(), nil
	}
	if err := ValidateStruct(updates); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	merged := existing.Clone()

	first := stringValue(updates.First)
	middle := stringValue(updates.Middle)
	last := stringValue(updates.Last)
	use := stringValue(updates.Use)
	if first != "" || middle != "" || last != "" || use != "" {
		merged.Name = mergePatientName(merged.Name, first, middle, last, use)
	}

	if gender := stringValue(updates.Gender); gender != "" {
		merged.Gender = gender
	}
	if updates.Phone != nil {
		merged.Telecom = replacePhone(merged.Telecom, *updates.Phone)
	}
	if updates.Dob != nil {
		merged.BirthDate = *updates.Dob
	}

	return merged, nil
}

// mergePatientName rebuilds the first name entry. Prefix, suffix and period
// of that entry and every other entry are kept as they are.
func mergePatientName(names []fhir_dto.HumanName, first, middle, last, use string) []fhir_dto.HumanName {
	var current fhir_dto.HumanName
	if len(names) > 0 {
		current = names[0]
	}

	var currentFirst string
	if len(current.Given) > 0 {
		currentFirst = current.Given[0]
	}

	given := make([]string, 0, len(current.Given)+1)
	if value := withFallback(first, currentFirst); value != "" {
		given = append(given, value)
	}
	if middle != "" {
		given = append(given, middle)
	} else if len(current.Given) > 1 {
		given = append(given, current.Given[1:]...)
	}

	rebuilt := current
	rebuilt.Use = withFallback(use, withFallback(current.Use, constvars.FhirNameUseOfficial))
	rebuilt.Family = withFallback(last, current.Family)
	rebuilt.Given = given
	rebuilt.Text = BuildPatientDisplayName(rebuilt)

	if len(names) == 0 {
		return []fhir_dto.HumanName{rebuilt}
	}
	result := make([]fhir_dto.HumanName, 0, len(names))
	result = append(result, rebuilt)
	return append(result, names[1:]...)
}

// replacePhone drops every phone contact point and appends phone when it is
// not empty. Nil is returned when no contact point remains.
func replacePhone(telecom []fhir_dto.ContactPoint, phone string) []fhir_dto.ContactPoint {
	result := make([]fhir_dto.ContactPoint, 0, len(telecom)+1)
	for _, contactPoint := range telecom {
		if contactPoint.System != constvars.FhirContactPointSystemPhone {
			result = append(result, contactPoint)
		}
	}
	if phone != "" {
		result = append(result, fhir_dto.ContactPoint{
			System: constvars.FhirContactPointSystemPhone,
			Value:  phone,
		})
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " ")
}

func withFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
