package patients

import (
	"context"
	"errors"
	"fmt"
	"patient-service/internal/app/config"
	"patient-service/internal/app/contracts"
	"patient-service/internal/pkg/constvars"
	"patient-service/internal/pkg/dto/requests"
	"patient-service/internal/pkg/dto/responses"
	"patient-service/internal/pkg/exceptions"
	"patient-service/internal/pkg/utils"
	"strings"

	"go.uber.org/zap"
)

type patientUsecase struct {
	PatientFhirClient contracts.PatientFhirClient
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
}

func NewPatientUsecase(
	patientFhirClient contracts.PatientFhirClient,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PatientUsecase {
	return &patientUsecase{
		PatientFhirClient: patientFhirClient,
		InternalConfig:    internalConfig,
		Log:               logger,
	}
}

func (uc *patientUsecase) Search(ctx context.Context, query *requests.PatientSearchQuery) (*responses.PatientSearchResult, error) {
	requestID := utils.GetRequestID(ctx)
	if query == nil {
		query = new(requests.PatientSearchQuery)
	}

	if query.PageURL != "" {
		if !utils.IsFhirServerLink(query.PageURL, uc.InternalConfig.FHIR.BaseUrl, uc.InternalConfig.FHIR.PageLinkOrigins...) {
			uc.Log.Warn("patientUsecase.Search rejected foreign page URL",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingFhirUrlKey, query.PageURL),
			)
			return nil, exceptions.ErrInvalidPageURL(nil)
		}

		bundle, err := uc.PatientFhirClient.FindByPageURL(ctx, query.PageURL)
		if err != nil {
			return nil, err
		}
		return utils.BuildPatientSearchResult(bundle), nil
	}

	bundle, err := uc.PatientFhirClient.FindAll(ctx, utils.BuildPatientSearchParams(query))
	if err != nil {
		return nil, err
	}

	result := utils.BuildPatientSearchResult(bundle)
	uc.Log.Debug("patientUsecase.Search succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPatientCountKey, len(result.Patients)),
	)
	return result, nil
}

func (uc *patientUsecase) FindByID(ctx context.Context, patientID string) (*responses.PatientDetail, error) {
	if strings.TrimSpace(patientID) == "" {
		return nil, exceptions.ErrPatientIDRequired(nil)
	}

	patientFhir, err := uc.PatientFhirClient.FindPatientByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return utils.MapPatientToDetail(patientFhir), nil
}

func (uc *patientUsecase) Create(ctx context.Context, request *requests.CreatePatient) (*responses.PatientDetail, error) {
	patientFhirRequest, err := utils.BuildPatientFromCreateRequest(request)
	if err != nil {
		return nil, err
	}

	patientFhir, err := uc.PatientFhirClient.CreatePatient(ctx, patientFhirRequest)
	if err != nil {
		return nil, err
	}
	return utils.MapPatientToDetail(patientFhir), nil
}

// Update reads the stored resource, merges the changes into a copy and
// writes the whole resource back.
func (uc *patientUsecase) Update(ctx context.Context, patientID string, request *requests.UpdatePatient) (*responses.PatientDetail, error) {
	requestID := utils.GetRequestID(ctx)
	if strings.TrimSpace(patientID) == "" {
		return nil, exceptions.ErrPatientIDRequired(nil)
	}
	if request != nil {
		if err := utils.ValidateStruct(request); err != nil {
			return nil, exceptions.ErrInputValidation(err)
		}
	}

	existing, err := uc.PatientFhirClient.FindPatientByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, exceptions.ErrNotFound) {
			return nil, err
		}
		uc.Log.Error("patientUsecase.Update failed to read the stored patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return nil, exceptions.ErrUpdateFHIRResource(err, constvars.ResourcePatient, fmt.Sprintf(constvars.ErrClientUpdatePatientFormat, patientID, clientMessageOf(err)))
	}

	merged, err := utils.MergePatientUpdate(existing, request)
	if err != nil {
		return nil, err
	}
	merged.ID = patientID

	updated, err := uc.PatientFhirClient.UpdatePatient(ctx, merged)
	if err != nil {
		return nil, err
	}
	return utils.MapPatientToDetail(updated), nil
}

func (uc *patientUsecase) Delete(ctx context.Context, patientID string) (*responses.DeletePatient, error) {
	if strings.TrimSpace(patientID) == "" {
		return nil, exceptions.ErrPatientIDRequired(nil)
	}

	err := uc.PatientFhirClient.DeletePatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	return &responses.DeletePatient{
		Message: fmt.Sprintf(constvars.DeletePatientConfirmationFormat, patientID),
	}, nil
}

func clientMessageOf(err error) string {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return customErr.ClientMessage
	}
	return err.Error()
}
