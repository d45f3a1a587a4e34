package patients

import (
	"context"
	"errors"
	"net/url"
	"patient-service/internal/app/config"
	"patient-service/internal/pkg/constvars"
	"patient-service/internal/pkg/dto/requests"
	"patient-service/internal/pkg/exceptions"
	"patient-service/internal/pkg/fhir_dto"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testFhirBaseUrl = "https://fhir.example.com/fhir"

type MockPatientFhirClient struct {
	mock.Mock
}

func (m *MockPatientFhirClient) FindAll(ctx context.Context, params url.Values) (*fhir_dto.Bundle, error) {
	args := m.Called(ctx, params)
	bundle, _ := args.Get(0).(*fhir_dto.Bundle)
	return bundle, args.Error(1)
}

func (m *MockPatientFhirClient) FindByPageURL(ctx context.Context, pageURL string) (*fhir_dto.Bundle, error) {
	args := m.Called(ctx, pageURL)
	bundle, _ := args.Get(0).(*fhir_dto.Bundle)
	return bundle, args.Error(1)
}

func (m *MockPatientFhirClient) FindPatientByID(ctx context.Context, patientID string) (*fhir_dto.Patient, error) {
	args := m.Called(ctx, patientID)
	patient, _ := args.Get(0).(*fhir_dto.Patient)
	return patient, args.Error(1)
}

func (m *MockPatientFhirClient) CreatePatient(ctx context.Context, request *fhir_dto.Patient) (*fhir_dto.Patient, error) {
	args := m.Called(ctx, request)
	patient, _ := args.Get(0).(*fhir_dto.Patient)
	return patient, args.Error(1)
}

func (m *MockPatientFhirClient) UpdatePatient(ctx context.Context, request *fhir_dto.Patient) (*fhir_dto.Patient, error) {
	args := m.Called(ctx, request)
	patient, _ := args.Get(0).(*fhir_dto.Patient)
	return patient, args.Error(1)
}

func (m *MockPatientFhirClient) DeletePatient(ctx context.Context, patientID string) error {
	args := m.Called(ctx, patientID)
	return args.Error(0)
}

func newTestUsecase() (*patientUsecase, *MockPatientFhirClient) {
	fhirClient := new(MockPatientFhirClient)
	internalConfig := &config.InternalConfig{
		FHIR: config.AppFHIR{BaseUrl: testFhirBaseUrl},
	}
	usecase := NewPatientUsecase(fhirClient, internalConfig, zap.NewNop())
	return usecase.(*patientUsecase), fhirClient
}

func stringPtr(value string) *string {
	return &value
}

func TestPatientUsecase_Search(t *testing.T) {
	bundle := &fhir_dto.Bundle{
		ResourceType: constvars.ResourceBundle,
		Total:        1,
		Link: []fhir_dto.BundleLink{
			{Relation: "self", Url: testFhirBaseUrl + "/Patient?_count=10&name%3Acontains=jo"},
			{Relation: "next", Url: testFhirBaseUrl + "?_getpages=abc&_getpagesoffset=10"},
		},
		Entry: []fhir_dto.BundleEntry{
			{Resource: json.RawMessage(`{"resourceType":"Patient","id":"a","name":[{"given":["Jo"],"family":"March"}]}`)},
		},
	}

	t.Run("Fresh Search", func(t *testing.T) {
		usecase, fhirClient := newTestUsecase()
		fhirClient.On("FindAll", mock.Anything, mock.MatchedBy(func(params url.Values) bool {
			return params.Get("name:contains") == "jo" && params.Get("_count") == "10" && params.Get("_sort") == "-_lastUpdated"
		})).Return(bundle, nil)

		result, err := usecase.Search(context.Background(), &requests.PatientSearchQuery{Name: "jo"})
		require.NoError(t, err)

		assert.Len(t, result.Patients, 1)
		assert.Equal(t, "Jo March", result.Patients[0].Name)
		assert.True(t, result.HasNextPage)
		assert.False(t, result.HasPrevPage)
		assert.Equal(t, map[string]string{"name:contains": "jo"}, result.CurrentSearchParams)
		fhirClient.AssertExpectations(t)
	})

	t.Run("Page URL Takes Precedence", func(t *testing.T) {
		usecase, fhirClient := newTestUsecase()
		pageURL := testFhirBaseUrl + "?_getpages=abc&_getpagesoffset=10"
		fhirClient.On("FindByPageURL", mock.Anything, pageURL).Return(bundle, nil)

		_, err := usecase.Search(context.Background(), &requests.PatientSearchQuery{Name: "ignored", PageURL: pageURL})
		require.NoError(t, err)

		fhirClient.AssertExpectations(t)
		fhirClient.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	})

	t.Run("Foreign Page URL", func(t *testing.T) {
		usecase, fhirClient := newTestUsecase()

		_, err := usecase.Search(context.Background(), &requests.PatientSearchQuery{PageURL: "https://elsewhere.example.com/fhir?page=2"})
		assert.True(t, errors.Is(err, exceptions.ErrValidation))
		fhirClient.AssertNotCalled(t, "FindByPageURL", mock.Anything, mock.Anything)
	})

	t.Run("Page URL From Configured Proxy Origin", func(t *testing.T) {
		usecase, fhirClient := newTestUsecase()
		usecase.InternalConfig.FHIR.PageLinkOrigins = []string{"http://fhir-proxy.internal:8080"}
		pageURL := "http://fhir-proxy.internal:8080/fhir?_getpages=abc&_getpagesoffset=10"
		fhirClient.On("FindByPageURL", mock.Anything, pageURL).Return(bundle, nil)

		_, err := usecase.Search(context.Background(), &requests.PatientSearchQuery{PageURL: pageURL})
		require.NoError(t, err)
		fhirClient.AssertExpectations(t)
	})

	t.Run("Remote Failure", func(t *testing.T) {
		usecase, fhirClient := newTestUsecase()
		remoteErr := exceptions.ErrGetFHIRResource(errors.New("timeout"), constvars.ResourceBundle, "Failed to fetch patients: timeout")
		fhirClient.On("FindAll", mock.Anything, mock.Anything).Return(nil, remoteErr)

		result, err := usecase.Search(context.Background(), nil)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, exceptions.ErrRemoteFetch))
	})
}

func TestPatientUsecase_FindByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		usecase, fhirClient := newTestUsecase()
		fhirClient.On("FindPatientByID", mock.Anything, "pat-1").Return(&fhir_dto.Patient{
			ResourceType: constvars.ResourcePatient,
			ID:           "pat-1",
			Name:         []fhir_dto.HumanName{{Given: []string{"Ana", "Maria"}, Family: "Lima"}},
		}, nil)

		detail, err := usecase.FindByID(context.Background(), "pat-1")
		require.NoError(t, err)
		assert.Equal(t, "Ana", detail.First)
		assert.Equal(t, "Maria", detail.Middle)
		assert.Equal(t, "Lima", detail.Last)
	})

	t.Run("Empty ID", func(t *testing.T) {
		usecase, fhirClient := newTestUsecase()

		_, err := usecase.FindByID(context.Background(), " ")
		assert.True(t, errors.Is(err, exceptions.ErrValidation))
		fhirClient.AssertNotCalled(t, "FindPatientByID", mock.Anything, mock.Anything)
	})
}

func TestPatientUsecase_Create(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		usecase, fhirClient := newTestUsecase()
		fhirClient.On("CreatePatient", mock.Anything, mock.MatchedBy(func(patient *fhir_dto.Patient) bool {
			return patient.Name[0].Text == "Jane Doe" && patient.Telecom != nil && len(patient.Telecom) == 0
		})).Return(&fhir_dto.Patient{
			ResourceType: constvars.ResourcePatient,
			ID:           "new-id",
			Name:         []fhir_dto.HumanName{{Given: []string{"Jane"}, Family: "Doe"}},
			Gender:       "female",
		}, nil)

		detail, err := usecase.Create(context.Background(), &requests.CreatePatient{First: "Jane", Last: "Doe", Gender: "female"})
		require.NoError(t, err)
		assert.Equal(t, "new-id", detail.ID)
		assert.Equal(t, "Jane Doe", detail.Name)
		fhirClient.AssertExpectations(t)
	})

	t.Run("Invalid Input Never Reaches The Server", func(t *testing.T) {
		usecase, fhirClient := newTestUsecase()

		_, err := usecase.Create(context.Background(), &requests.CreatePatient{First: "Jane", Gender: "female"})
		assert.True(t, errors.Is(err, exceptions.ErrValidation))
		fhirClient.AssertNotCalled(t, "CreatePatient", mock.Anything, mock.Anything)
	})

	t.Run("Remote Failure", func(t *testing.T) {
		usecase, fhirClient := newTestUsecase()
		remoteErr := exceptions.ErrCreateFHIRResource(errors.New("Unknown gender code"), constvars.ResourcePatient, "Failed to create patient: Unknown gender code")
		fhirClient.On("CreatePatient", mock.Anything, mock.Anything).Return(nil, remoteErr)

		_, err := usecase.Create(context.Background(), &requests.CreatePatient{First: "Jane", Last: "Doe", Gender: "female"})
		assert.True(t, errors.Is(err, exceptions.ErrRemoteWrite))
	})
}

func TestPatientUsecase_Update(t *testing.T) {
	existing := func() *fhir_dto.Patient {
		return &fhir_dto.Patient{
			ResourceType: constvars.ResourcePatient,
			ID:           "pat-1",
			Name:         []fhir_dto.HumanName{{Use: "official", Given: []string{"John", "Paul"}, Family: "Smith"}},
			Telecom:      []fhir_dto.ContactPoint{{System: "phone", Value: "555"}},
			Gender:       "male",
			Other:        map[string]json.RawMessage{"identifier": json.RawMessage(`[{"value":"MRN-7"}]`)},
		}
	}

	t.Run("Merges And Writes Back", func(t *testing.T) {
		usecase, fhirClient := newTestUsecase()
		fhirClient.On("FindPatientByID", mock.Anything, "pat-1").Return(existing(), nil)
		fhirClient.On("UpdatePatient", mock.Anything, mock.MatchedBy(func(patient *fhir_dto.Patient) bool {
			return patient.ID == "pat-1" &&
				assert.ObjectsAreEqual([]string{"Jon", "Paul"}, patient.Name[0].Given) &&
				patient.Telecom == nil &&
				string(patient.Other["identifier"]) == `[{"value":"MRN-7"}]`
		})).Return(&fhir_dto.Patient{
			ResourceType: constvars.ResourcePatient,
			ID:           "pat-1",
			Name:         []fhir_dto.HumanName{{Given: []string{"Jon", "Paul"}, Family: "Smith"}},
		}, nil)

		detail, err := usecase.Update(context.Background(), "pat-1", &requests.UpdatePatient{
			First: stringPtr("Jon"),
			Phone: stringPtr(""),
		})
		require.NoError(t, err)
		assert.Equal(t, "Jon", detail.First)
		assert.Equal(t, "Paul", detail.Middle)
		fhirClient.AssertExpectations(t)
	})

	t.Run("Missing Patient", func(t *testing.T) {
		usecase, fhirClient := newTestUsecase()
		fhirClient.On("FindPatientByID", mock.Anything, "gone").Return(nil, exceptions.ErrFHIRResourceNotFound(nil, constvars.ResourcePatient))

		_, err := usecase.Update(context.Background(), "gone", &requests.UpdatePatient{Gender: stringPtr("female")})
		assert.True(t, errors.Is(err, exceptions.ErrNotFound))
		fhirClient.AssertNotCalled(t, "UpdatePatient", mock.Anything, mock.Anything)
	})

	t.Run("Read Failure Is A Write Failure", func(t *testing.T) {
		usecase, fhirClient := newTestUsecase()
		readErr := exceptions.ErrGetFHIRResource(errors.New("timeout"), constvars.ResourcePatient, "Failed to retrieve patient from FHIR server: timeout")
		fhirClient.On("FindPatientByID", mock.Anything, "pat-1").Return(nil, readErr)

		_, err := usecase.Update(context.Background(), "pat-1", &requests.UpdatePatient{Gender: stringPtr("female")})
		assert.True(t, errors.Is(err, exceptions.ErrRemoteWrite))
		assert.False(t, errors.Is(err, exceptions.ErrRemoteFetch))

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, "Failed to update patient pat-1: Failed to retrieve patient from FHIR server: timeout", customErr.ClientMessage)
	})

	t.Run("Invalid Update Is Rejected Before Reading", func(t *testing.T) {
		usecase, fhirClient := newTestUsecase()

		_, err := usecase.Update(context.Background(), "pat-1", &requests.UpdatePatient{Dob: stringPtr("yesterday")})
		assert.True(t, errors.Is(err, exceptions.ErrValidation))
		fhirClient.AssertNotCalled(t, "FindPatientByID", mock.Anything, mock.Anything)
	})

	t.Run("Empty ID", func(t *testing.T) {
		usecase, _ := newTestUsecase()

		_, err := usecase.Update(context.Background(), "", &requests.UpdatePatient{})
		assert.True(t, errors.Is(err, exceptions.ErrValidation))
	})
}

func TestPatientUsecase_Delete(t *testing.T) {
	t.Run("Deleted", func(t *testing.T) {
		usecase, fhirClient := newTestUsecase()
		fhirClient.On("DeletePatient", mock.Anything, "pat-1").Return(nil)

		response, err := usecase.Delete(context.Background(), "pat-1")
		require.NoError(t, err)
		assert.Equal(t, "Patient with ID pat-1 deleted successfully.", response.Message)
	})

	t.Run("Empty ID", func(t *testing.T) {
		usecase, fhirClient := newTestUsecase()

		_, err := usecase.Delete(context.Background(), "")
		assert.True(t, errors.Is(err, exceptions.ErrValidation))
		fhirClient.AssertNotCalled(t, "DeletePatient", mock.Anything, mock.Anything)
	})

	t.Run("Remote Failure", func(t *testing.T) {
		usecase, fhirClient := newTestUsecase()
		fhirClient.On("DeletePatient", mock.Anything, "pat-1").Return(
			exceptions.ErrDeleteFHIRResource(errors.New("conflict"), constvars.ResourcePatient, "Failed to delete patient pat-1: conflict"),
		)

		_, err := usecase.Delete(context.Background(), "pat-1")
		assert.True(t, errors.Is(err, exceptions.ErrRemoteWrite))
	})
}
