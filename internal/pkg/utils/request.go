package utils

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"patient-service/internal/pkg/constvars"
	"patient-service/internal/pkg/dto/requests"
	"patient-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

// DecodeJSONBody decodes the request body into dst. An empty body leaves dst
// untouched.
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return exceptions.ErrRequestBodyTooLarge(err)
		}
		return exceptions.ErrCannotParseJSON(err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	return nil
}

func BuildPatientSearchQuery(r *http.Request) *requests.PatientSearchQuery {
	query := r.URL.Query()
	return &requests.PatientSearchQuery{
		Name:      query.Get(constvars.URLQueryParamName),
		Phone:     query.Get(constvars.URLQueryParamPhone),
		BirthDate: query.Get(constvars.URLQueryParamBirthdate),
		ID:        query.Get(constvars.URLQueryParamID),
		PageURL:   query.Get(constvars.URLQueryParamPageURL),
	}
}
