package patients

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"patient-service/internal/app/contracts"
	"patient-service/internal/app/drivers/metrics"
	"patient-service/internal/pkg/constvars"
	"patient-service/internal/pkg/exceptions"
	"patient-service/internal/pkg/fhir_dto"
	"patient-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	operationFindAll         = "FindAll"
	operationFindByPageURL   = "FindByPageURL"
	operationFindPatientByID = "FindPatientByID"
	operationCreatePatient   = "CreatePatient"
	operationUpdatePatient   = "UpdatePatient"
	operationDeletePatient   = "DeletePatient"
)

type patientFhirClient struct {
	BaseUrl    string
	HTTPClient *http.Client
	Metrics    *metrics.Metrics
	Log        *zap.Logger
}

func NewPatientFhirClient(baseUrl string, httpClient *http.Client, metrics *metrics.Metrics, logger *zap.Logger) contracts.PatientFhirClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &patientFhirClient{
		BaseUrl:    baseUrl + "/" + constvars.ResourcePatient,
		HTTPClient: httpClient,
		Metrics:    metrics,
		Log:        logger,
	}
}

func (c *patientFhirClient) FindAll(ctx context.Context, params url.Values) (*fhir_dto.Bundle, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("patientFhirClient.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, params),
	)

	fhirURL := c.BaseUrl
	if encoded := params.Encode(); encoded != "" {
		fhirURL += "?" + encoded
	}

	bundle, err := c.searchBundle(ctx, operationFindAll, fhirURL)
	if err != nil {
		return nil, err
	}

	c.Log.Info("patientFhirClient.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPatientCountKey, len(bundle.Entry)),
	)
	return bundle, nil
}

// FindByPageURL follows a link issued by the server as is.
func (c *patientFhirClient) FindByPageURL(ctx context.Context, pageURL string) (*fhir_dto.Bundle, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("patientFhirClient.FindByPageURL called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFhirUrlKey, pageURL),
	)

	bundle, err := c.searchBundle(ctx, operationFindByPageURL, pageURL)
	if err != nil {
		return nil, err
	}

	c.Log.Info("patientFhirClient.FindByPageURL succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPatientCountKey, len(bundle.Entry)),
	)
	return bundle, nil
}

func (c *patientFhirClient) searchBundle(ctx context.Context, operation, fhirURL string) (bundle *fhir_dto.Bundle, err error) {
	requestID := utils.GetRequestID(ctx)
	startedAt := time.Now()
	defer func() { c.Metrics.ObserveFhirRequest(operation, startedAt, err) }()

	resp, err := c.sendRequest(ctx, constvars.MethodGet, fhirURL, nil)
	if err != nil {
		c.Log.Error("patientFhirClient."+operation+" error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrGetFHIRResource(err, constvars.ResourceBundle, fmt.Sprintf(constvars.ErrClientFetchPatientsFormat, err.Error()))
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		fhirErr := readRemoteError(resp)
		c.Log.Error("patientFhirClient."+operation+" FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(fhirErr),
		)
		return nil, exceptions.ErrGetFHIRResource(fhirErr, constvars.ResourceBundle, fmt.Sprintf(constvars.ErrClientFetchPatientsFormat, fhirErr.Error()))
	}

	bundle = new(fhir_dto.Bundle)
	err = json.NewDecoder(resp.Body).Decode(bundle)
	if err != nil {
		c.Log.Error("patientFhirClient."+operation+" error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceBundle)
	}
	return bundle, nil
}

func (c *patientFhirClient) FindPatientByID(ctx context.Context, patientID string) (patientFhir *fhir_dto.Patient, err error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("patientFhirClient.FindPatientByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	startedAt := time.Now()
	defer func() { c.Metrics.ObserveFhirRequest(operationFindPatientByID, startedAt, err) }()

	resp, err := c.sendRequest(ctx, constvars.MethodGet, c.resourceURL(patientID), nil)
	if err != nil {
		c.Log.Error("patientFhirClient.FindPatientByID error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrGetFHIRResource(err, constvars.ResourcePatient, fmt.Sprintf(constvars.ErrClientFetchPatientFormat, err.Error()))
	}
	defer resp.Body.Close()

	if isGoneOrMissing(resp.StatusCode) {
		c.Log.Info("patientFhirClient.FindPatientByID patient not found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		)
		return nil, exceptions.ErrFHIRResourceNotFound(readRemoteError(resp), constvars.ResourcePatient)
	}

	if resp.StatusCode != constvars.StatusOK {
		fhirErr := readRemoteError(resp)
		c.Log.Error("patientFhirClient.FindPatientByID FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(fhirErr),
		)
		return nil, exceptions.ErrGetFHIRResource(fhirErr, constvars.ResourcePatient, fmt.Sprintf(constvars.ErrClientFetchPatientFormat, fhirErr.Error()))
	}

	patientFhir = new(fhir_dto.Patient)
	err = json.NewDecoder(resp.Body).Decode(patientFhir)
	if err != nil {
		c.Log.Error("patientFhirClient.FindPatientByID error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePatient)
	}

	if !patientFhir.IsPatient() {
		c.Log.Info("patientFhirClient.FindPatientByID resource is not a patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
		)
		return nil, exceptions.ErrFHIRResourceNotFound(nil, constvars.ResourcePatient)
	}

	c.Log.Info("patientFhirClient.FindPatientByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientFhir.ID),
	)
	return patientFhir, nil
}

func (c *patientFhirClient) CreatePatient(ctx context.Context, request *fhir_dto.Patient) (patientFhir *fhir_dto.Patient, err error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("patientFhirClient.CreatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	startedAt := time.Now()
	defer func() { c.Metrics.ObserveFhirRequest(operationCreatePatient, startedAt, err) }()

	resp, err := c.sendRequest(ctx, constvars.MethodPost, c.BaseUrl, request)
	if err != nil {
		c.Log.Error("patientFhirClient.CreatePatient error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateFHIRResource(err, constvars.ResourcePatient, fmt.Sprintf(constvars.ErrClientCreatePatientFormat, err.Error()))
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusCreated && resp.StatusCode != constvars.StatusOK {
		fhirErr := readRemoteError(resp)
		c.Log.Error("patientFhirClient.CreatePatient FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(fhirErr),
		)
		return nil, exceptions.ErrCreateFHIRResource(fhirErr, constvars.ResourcePatient, fmt.Sprintf(constvars.ErrClientCreatePatientFormat, fhirErr.Error()))
	}

	patientFhir, err = decodePatientOrEcho(resp.Body, request)
	if err != nil {
		c.Log.Error("patientFhirClient.CreatePatient error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateFHIRResource(err, constvars.ResourcePatient, fmt.Sprintf(constvars.ErrClientCreatePatientFormat, constvars.ErrClientUnreadableFHIRResponse))
	}

	c.Log.Info("patientFhirClient.CreatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientFhir.ID),
	)
	return patientFhir, nil
}

func (c *patientFhirClient) UpdatePatient(ctx context.Context, request *fhir_dto.Patient) (patientFhir *fhir_dto.Patient, err error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("patientFhirClient.UpdatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.ID),
	)
	startedAt := time.Now()
	defer func() { c.Metrics.ObserveFhirRequest(operationUpdatePatient, startedAt, err) }()

	resp, err := c.sendRequest(ctx, constvars.MethodPut, c.resourceURL(request.ID), request)
	if err != nil {
		c.Log.Error("patientFhirClient.UpdatePatient error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrUpdateFHIRResource(err, constvars.ResourcePatient, fmt.Sprintf(constvars.ErrClientUpdatePatientFormat, request.ID, err.Error()))
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK && resp.StatusCode != constvars.StatusCreated {
		fhirErr := readRemoteError(resp)
		c.Log.Error("patientFhirClient.UpdatePatient FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(fhirErr),
		)
		return nil, exceptions.ErrUpdateFHIRResource(fhirErr, constvars.ResourcePatient, fmt.Sprintf(constvars.ErrClientUpdatePatientFormat, request.ID, fhirErr.Error()))
	}

	patientFhir, err = decodePatientOrEcho(resp.Body, request)
	if err != nil {
		c.Log.Error("patientFhirClient.UpdatePatient error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrUpdateFHIRResource(err, constvars.ResourcePatient, fmt.Sprintf(constvars.ErrClientUpdatePatientFormat, request.ID, constvars.ErrClientUnreadableFHIRResponse))
	}

	c.Log.Info("patientFhirClient.UpdatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientFhir.ID),
	)
	return patientFhir, nil
}

func (c *patientFhirClient) DeletePatient(ctx context.Context, patientID string) (err error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("patientFhirClient.DeletePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	startedAt := time.Now()
	defer func() { c.Metrics.ObserveFhirRequest(operationDeletePatient, startedAt, err) }()

	resp, err := c.sendRequest(ctx, constvars.MethodDelete, c.resourceURL(patientID), nil)
	if err != nil {
		c.Log.Error("patientFhirClient.DeletePatient error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrDeleteFHIRResource(err, constvars.ResourcePatient, fmt.Sprintf(constvars.ErrClientDeletePatientFormat, patientID, err.Error()))
	}
	defer resp.Body.Close()

	if resp.StatusCode < constvars.StatusOK || resp.StatusCode >= 300 {
		fhirErr := readRemoteError(resp)
		c.Log.Error("patientFhirClient.DeletePatient FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(fhirErr),
		)
		return exceptions.ErrDeleteFHIRResource(fhirErr, constvars.ResourcePatient, fmt.Sprintf(constvars.ErrClientDeletePatientFormat, patientID, fhirErr.Error()))
	}

	c.Log.Info("patientFhirClient.DeletePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return nil
}

func (c *patientFhirClient) resourceURL(patientID string) string {
	return c.BaseUrl + "/" + url.PathEscape(patientID)
}

func (c *patientFhirClient) sendRequest(ctx context.Context, method, fhirURL string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		payloadJSON, err := json.Marshal(payload)
		if err != nil {
			return nil, exceptions.ErrCannotMarshalJSON(err)
		}
		body = bytes.NewReader(payloadJSON)
	}

	req, err := http.NewRequestWithContext(ctx, method, fhirURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)
	if payload != nil {
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
	}

	return c.HTTPClient.Do(req)
}

// readRemoteError turns a failed response into an error carrying the
// OperationOutcome diagnostics, or the status code when there are none.
func readRemoteError(resp *http.Response) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err == nil && len(bodyBytes) > 0 {
		var outcome fhir_dto.OperationOutcome
		if json.Unmarshal(bodyBytes, &outcome) == nil {
			if diagnostics := outcome.Diagnostics(); diagnostics != "" {
				return errors.New(diagnostics)
			}
		}
	}
	return fmt.Errorf(constvars.ErrDevFHIRUnexpectedStatusCode, resp.StatusCode)
}

// decodePatientOrEcho decodes the returned resource. Servers asked for a
// minimal return send no body, in which case the sent resource is returned.
func decodePatientOrEcho(body io.Reader, sent *fhir_dto.Patient) (*fhir_dto.Patient, error) {
	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(bodyBytes)) == 0 {
		return sent.Clone(), nil
	}

	patientFhir := new(fhir_dto.Patient)
	if err := json.Unmarshal(bodyBytes, patientFhir); err != nil {
		return nil, err
	}
	return patientFhir, nil
}

func isGoneOrMissing(statusCode int) bool {
	return statusCode == constvars.StatusNotFound || statusCode == constvars.StatusGone
}
