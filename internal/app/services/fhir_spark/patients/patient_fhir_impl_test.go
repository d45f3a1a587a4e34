package patients

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"patient-service/internal/app/drivers/metrics"
	"patient-service/internal/pkg/constvars"
	"patient-service/internal/pkg/exceptions"
	"patient-service/internal/pkg/fhir_dto"
	"testing"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const operationOutcomeInvalidGender = `{"resourceType":"OperationOutcome","issue":[{"severity":"error","code":"invalid","diagnostics":"Unknown gender code"}]}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*patientFhirClient, *prometheus.Registry) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	registry := prometheus.NewRegistry()
	client := NewPatientFhirClient(server.URL, server.Client(), metrics.New(registry), zap.NewNop())
	return client.(*patientFhirClient), registry
}

func counterValue(t *testing.T, registry *prometheus.Registry, operation, outcome string) float64 {
	t.Helper()
	families, err := registry.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != "fhir_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := map[string]string{}
			for _, label := range metric.GetLabel() {
				labels[label.GetName()] = label.GetValue()
			}
			if labels["operation"] == operation && labels["outcome"] == outcome {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func TestPatientFhirClient_FindAll(t *testing.T) {
	t.Run("Sends Search Parameters", func(t *testing.T) {
		client, registry := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/Patient", r.URL.Path)
			assert.Equal(t, "jo", r.URL.Query().Get("name:contains"))
			assert.Equal(t, "10", r.URL.Query().Get("_count"))
			assert.Equal(t, constvars.MIMEApplicationFHIRJSON, r.Header.Get(constvars.HeaderAccept))

			writeJSON(w, http.StatusOK, `{"resourceType":"Bundle","total":1,"entry":[{"resource":{"resourceType":"Patient","id":"a"}}]}`)
		})

		params := url.Values{}
		params.Set("_count", "10")
		params.Set("name:contains", "jo")

		bundle, err := client.FindAll(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, 1, bundle.Total)
		assert.Len(t, bundle.Entry, 1)
		assert.Equal(t, float64(1), counterValue(t, registry, operationFindAll, metrics.OutcomeSuccess))
	})

	t.Run("Remote Failure", func(t *testing.T) {
		client, registry := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, `{"resourceType":"OperationOutcome","issue":[{"severity":"fatal","diagnostics":"database offline"}]}`)
		})

		bundle, err := client.FindAll(context.Background(), url.Values{})
		assert.Nil(t, bundle)
		assert.True(t, errors.Is(err, exceptions.ErrRemoteFetch))

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, "Failed to fetch patients: database offline", customErr.ClientMessage)
		assert.Equal(t, float64(1), counterValue(t, registry, operationFindAll, metrics.OutcomeFailure))
	})

	t.Run("Undecodable Body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `<html>`)
		})

		_, err := client.FindAll(context.Background(), url.Values{})
		assert.True(t, errors.Is(err, exceptions.ErrRemoteFetch))
	})
}

func TestPatientFhirClient_FindByPageURL(t *testing.T) {
	var receivedQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		receivedQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, `{"resourceType":"Bundle","link":[{"relation":"previous","url":"p"}]}`)
	})

	pageURL := client.BaseUrl + "?_getpages=abc&_getpagesoffset=10&_count=10"
	bundle, err := client.FindByPageURL(context.Background(), pageURL)
	require.NoError(t, err)

	assert.Equal(t, "_getpages=abc&_getpagesoffset=10&_count=10", receivedQuery, "link should be followed verbatim")
	assert.Equal(t, "p", bundle.LinkURL("previous"))
}

func TestPatientFhirClient_FindPatientByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/Patient/pat-1", r.URL.Path)
			writeJSON(w, http.StatusOK, `{"resourceType":"Patient","id":"pat-1","gender":"male"}`)
		})

		patient, err := client.FindPatientByID(context.Background(), "pat-1")
		require.NoError(t, err)
		assert.Equal(t, "pat-1", patient.ID)
		assert.Equal(t, "male", patient.Gender)
	})

	for _, status := range []int{http.StatusNotFound, http.StatusGone} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, status, `{"resourceType":"OperationOutcome","issue":[{"severity":"error","diagnostics":"Resource Patient/x is not known"}]}`)
			})

			_, err := client.FindPatientByID(context.Background(), "x")
			assert.True(t, errors.Is(err, exceptions.ErrNotFound))
		})
	}

	t.Run("Not A Patient", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"resourceType":"Observation","id":"obs"}`)
		})

		_, err := client.FindPatientByID(context.Background(), "obs")
		assert.True(t, errors.Is(err, exceptions.ErrNotFound))
	})

	t.Run("Server Error Without Outcome", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.FindPatientByID(context.Background(), "x")
		assert.True(t, errors.Is(err, exceptions.ErrRemoteFetch))

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Contains(t, customErr.ClientMessage, "unexpected status code 503")
	})
}

func TestPatientFhirClient_CreatePatient(t *testing.T) {
	request := &fhir_dto.Patient{
		ResourceType: constvars.ResourcePatient,
		Name:         []fhir_dto.HumanName{{Use: "official", Given: []string{"Jane"}, Family: "Doe"}},
		Gender:       "female",
		Telecom:      []fhir_dto.ContactPoint{},
	}

	t.Run("Created", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/Patient", r.URL.Path)
			assert.Equal(t, constvars.MIMEApplicationFHIRJSON, r.Header.Get(constvars.HeaderContentType))

			body, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			assert.Contains(t, string(body), `"telecom":[]`)

			writeJSON(w, http.StatusCreated, `{"resourceType":"Patient","id":"new-id","gender":"female"}`)
		})

		patient, err := client.CreatePatient(context.Background(), request)
		require.NoError(t, err)
		assert.Equal(t, "new-id", patient.ID)
	})

	t.Run("Created Without Body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})

		patient, err := client.CreatePatient(context.Background(), request)
		require.NoError(t, err)
		assert.Equal(t, request.Gender, patient.Gender)
	})

	t.Run("Rejected With Diagnostics", func(t *testing.T) {
		client, registry := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, operationOutcomeInvalidGender)
		})

		_, err := client.CreatePatient(context.Background(), request)
		assert.True(t, errors.Is(err, exceptions.ErrRemoteWrite))

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, "Failed to create patient: Unknown gender code", customErr.ClientMessage)
		assert.Equal(t, float64(1), counterValue(t, registry, operationCreatePatient, metrics.OutcomeFailure))
	})

	t.Run("Accepted With Unreadable Body", func(t *testing.T) {
		client, registry := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, "<html>oops</html>")
		})

		_, err := client.CreatePatient(context.Background(), request)
		assert.True(t, errors.Is(err, exceptions.ErrRemoteWrite))
		assert.False(t, errors.Is(err, exceptions.ErrRemoteFetch))

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, "Failed to create patient: unreadable response from FHIR server", customErr.ClientMessage)
		assert.Equal(t, float64(1), counterValue(t, registry, operationCreatePatient, metrics.OutcomeFailure))
	})
}

func TestPatientFhirClient_UpdatePatient(t *testing.T) {
	t.Run("Sends Whole Resource", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/Patient/pat-1", r.URL.Path)

			var sent map[string]json.RawMessage
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
			assert.JSONEq(t, `[{"system":"urn:mrn","value":"42"}]`, string(sent["identifier"]))

			writeJSON(w, http.StatusOK, `{"resourceType":"Patient","id":"pat-1","gender":"other"}`)
		})

		patient := &fhir_dto.Patient{
			ResourceType: constvars.ResourcePatient,
			ID:           "pat-1",
			Gender:       "other",
			Other:        map[string]json.RawMessage{"identifier": json.RawMessage(`[{"system":"urn:mrn","value":"42"}]`)},
		}
		updated, err := client.UpdatePatient(context.Background(), patient)
		require.NoError(t, err)
		assert.Equal(t, "other", updated.Gender)
	})

	t.Run("Rejected", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnprocessableEntity, operationOutcomeInvalidGender)
		})

		_, err := client.UpdatePatient(context.Background(), &fhir_dto.Patient{ResourceType: constvars.ResourcePatient, ID: "pat-1"})
		assert.True(t, errors.Is(err, exceptions.ErrRemoteWrite))

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, "Failed to update patient pat-1: Unknown gender code", customErr.ClientMessage)
	})

	t.Run("Accepted With Unreadable Body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			io.WriteString(w, "<html>oops</html>")
		})

		_, err := client.UpdatePatient(context.Background(), &fhir_dto.Patient{ResourceType: constvars.ResourcePatient, ID: "pat-1"})
		assert.True(t, errors.Is(err, exceptions.ErrRemoteWrite))
		assert.False(t, errors.Is(err, exceptions.ErrRemoteFetch))
	})
}

func TestPatientFhirClient_DeletePatient(t *testing.T) {
	t.Run("Deleted", func(t *testing.T) {
		client, registry := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/Patient/pat-1", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		})

		require.NoError(t, client.DeletePatient(context.Background(), "pat-1"))
		assert.Equal(t, float64(1), counterValue(t, registry, operationDeletePatient, metrics.OutcomeSuccess))
	})

	t.Run("Rejected", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusConflict, `{"resourceType":"OperationOutcome","issue":[{"severity":"error","diagnostics":"Patient is referenced"}]}`)
		})

		err := client.DeletePatient(context.Background(), "pat-1")
		assert.True(t, errors.Is(err, exceptions.ErrRemoteWrite))

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, "Failed to delete patient pat-1: Patient is referenced", customErr.ClientMessage)
	})
}

func TestPatientFhirClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := NewPatientFhirClient(baseURL, nil, nil, zap.NewNop())

	_, err := client.FindAll(context.Background(), url.Values{})
	assert.True(t, errors.Is(err, exceptions.ErrRemoteFetch))

	err = client.DeletePatient(context.Background(), "pat-1")
	assert.True(t, errors.Is(err, exceptions.ErrRemoteWrite))
}
