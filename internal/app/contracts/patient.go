package contracts

import (
	"context"
	"net/url"
	"patient-service/internal/pkg/dto/requests"
	"patient-service/internal/pkg/dto/responses"
	"patient-service/internal/pkg/fhir_dto"
)

type PatientUsecase interface {
	Search(ctx context.Context, query *requests.PatientSearchQuery) (*responses.PatientSearchResult, error)
	FindByID(ctx context.Context, patientID string) (*responses.PatientDetail, error)
	Create(ctx context.Context, request *requests.CreatePatient) (*responses.PatientDetail, error)
	Update(ctx context.Context, patientID string, request *requests.UpdatePatient) (*responses.PatientDetail, error)
	Delete(ctx context.Context, patientID string) (*responses.DeletePatient, error)
}

type PatientFhirClient interface {
	FindAll(ctx context.Context, params url.Values) (*fhir_dto.Bundle, error)
	FindByPageURL(ctx context.Context, pageURL string) (*fhir_dto.Bundle, error)
	FindPatientByID(ctx context.Context, patientID string) (*fhir_dto.Patient, error)
	CreatePatient(ctx context.Context, request *fhir_dto.Patient) (*fhir_dto.Patient, error)
	UpdatePatient(ctx context.Context, request *fhir_dto.Patient) (*fhir_dto.Patient, error)
	DeletePatient(ctx context.Context, patientID string) error
}
