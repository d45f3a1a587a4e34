package exceptions

import (
	"fmt"
	"patient-service/internal/pkg/constvars"
)

var (
	ErrInputValidation = func(err error) *CustomError {
		return buildCustomError(ErrValidation, err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrPatientValidation = func(err error, clientMessage string) *CustomError {
		return buildCustomError(ErrValidation, err, constvars.StatusBadRequest, clientMessage, constvars.ErrDevValidationFailed)
	}
	ErrPatientIDRequired = func(err error) *CustomError {
		return buildCustomError(ErrValidation, err, constvars.StatusBadRequest, constvars.ErrClientPatientIDRequired, constvars.ErrDevInvalidInput)
	}
	ErrInvalidPageURL = func(err error) *CustomError {
		return buildCustomError(ErrValidation, err, constvars.StatusBadRequest, constvars.ErrClientInvalidPageURL, constvars.ErrDevInvalidPageURL)
	}

	// Parse
	ErrCannotParseJSON = func(err error) *CustomError {
		return buildCustomError(ErrValidation, err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrRequestBodyTooLarge = func(err error) *CustomError {
		return buildCustomError(ErrValidation, err, constvars.StatusRequestTooLarge, constvars.ErrClientRequestBodyTooLarge, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return buildCustomError(nil, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}

	// FHIR
	ErrGetFHIRResource = func(err error, resource, clientMessage string) *CustomError {
		return buildCustomError(ErrRemoteFetch, err, constvars.StatusBadGateway, clientMessage, fmt.Sprintf(constvars.ErrDevFHIRGetResource, resource))
	}
	ErrFHIRResourceNotFound = func(err error, resource string) *CustomError {
		return buildCustomError(ErrNotFound, err, constvars.StatusNotFound, constvars.ErrClientPatientNotFound, fmt.Sprintf(constvars.ErrDevFHIRResourceNotFound, resource))
	}
	ErrCreateFHIRResource = func(err error, resource, clientMessage string) *CustomError {
		return buildCustomError(ErrRemoteWrite, err, constvars.StatusBadGateway, clientMessage, fmt.Sprintf(constvars.ErrDevFHIRCreateResource, resource))
	}
	ErrUpdateFHIRResource = func(err error, resource, clientMessage string) *CustomError {
		return buildCustomError(ErrRemoteWrite, err, constvars.StatusBadGateway, clientMessage, fmt.Sprintf(constvars.ErrDevFHIRUpdateResource, resource))
	}
	ErrDeleteFHIRResource = func(err error, resource, clientMessage string) *CustomError {
		return buildCustomError(ErrRemoteWrite, err, constvars.StatusBadGateway, clientMessage, fmt.Sprintf(constvars.ErrDevFHIRDeleteResource, resource))
	}
	ErrDecodeResponse = func(err error, resource string) *CustomError {
		return buildCustomError(ErrRemoteFetch, err, constvars.StatusBadGateway, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevFHIRDecodeResponse, resource))
	}

	// Default Server
	ErrServerProcess = func(err error) *CustomError {
		return buildCustomError(nil, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevServerProcess)
	}
)
