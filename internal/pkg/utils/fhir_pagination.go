package utils

import (
	"net/url"
	"patient-service/internal/pkg/constvars"
	"patient-service/internal/pkg/dto/requests"
	"patient-service/internal/pkg/dto/responses"
	"patient-service/internal/pkg/fhir_dto"
	"strings"

	"github.com/goccy/go-json"
)

// BuildPatientSearchParams returns the query of a fresh search: the default
// page size and sort, then the supplied filters.
func BuildPatientSearchParams(query *requests.PatientSearchQuery) url.Values {
	params := url.Values{}
	params.Set(constvars.FhirSearchParamCount, constvars.FhirSearchDefaultPageSize)
	params.Set(constvars.FhirSearchParamSort, constvars.FhirSearchDefaultSort)
	if query == nil {
		return params
	}

	if query.Name != "" {
		params.Set(constvars.FhirSearchParamNameContains, query.Name)
	}
	if query.Phone != "" {
		params.Set(constvars.FhirSearchParamTelecom, query.Phone)
	}
	if query.BirthDate != "" {
		params.Set(constvars.FhirSearchParamBirthdate, query.BirthDate)
	}
	if query.ID != "" {
		params.Set(constvars.FhirSearchParamID, query.ID)
	}
	return params
}

func BuildPatientSearchResult(bundle *fhir_dto.Bundle) *responses.PatientSearchResult {
	result := &responses.PatientSearchResult{
		Patients:            []responses.PatientSummary{},
		CurrentSearchParams: map[string]string{},
	}
	if bundle == nil {
		return result
	}

	for _, entry := range bundle.Entry {
		if len(entry.Resource) == 0 {
			continue
		}
		var patient fhir_dto.Patient
		if err := json.Unmarshal(entry.Resource, &patient); err != nil {
			continue
		}
		if summary := MapPatientToSummary(&patient); summary != nil {
			result.Patients = append(result.Patients, *summary)
		}
	}

	result.Total = bundle.Total
	result.SelfLink = bundle.LinkURL(constvars.FhirLinkRelationSelf)
	result.NextLink = bundle.LinkURL(constvars.FhirLinkRelationNext)
	result.PrevLink = bundle.LinkURL(constvars.FhirLinkRelationPrevious)
	result.FirstLink = bundle.LinkURL(constvars.FhirLinkRelationFirst)
	result.LastLink = bundle.LinkURL(constvars.FhirLinkRelationLast)
	result.HasNextPage = result.NextLink != ""
	result.HasPrevPage = result.PrevLink != ""
	result.CurrentSearchParams = NormalizeSearchParams(result.SelfLink)

	return result
}

// NormalizeSearchParams reads the filters back from a self link, leaving out
// the parameters that only carry paging state. The last value of a repeated
// parameter wins.
func NormalizeSearchParams(selfLink string) map[string]string {
	params := map[string]string{}
	if selfLink == "" {
		return params
	}

	parsed, err := url.Parse(selfLink)
	if err != nil {
		return params
	}
	for key, values := range parsed.Query() {
		if len(values) == 0 || constvars.FhirPaginationOnlyParams[strings.ToLower(key)] {
			continue
		}
		params[key] = values[len(values)-1]
	}
	return params
}

// IsFhirServerLink reports whether link points at the server behind baseURL
// or at one of the extra origins the server is known to issue links from.
func IsFhirServerLink(link, baseURL string, extraOrigins ...string) bool {
	parsedLink, err := url.Parse(link)
	if err != nil || !parsedLink.IsAbs() {
		return false
	}
	for _, origin := range append([]string{baseURL}, extraOrigins...) {
		if sameOrigin(parsedLink, origin) {
			return true
		}
	}
	return false
}

func sameOrigin(link *url.URL, origin string) bool {
	parsedOrigin, err := url.Parse(strings.TrimSpace(origin))
	if err != nil || parsedOrigin.Host == "" {
		return false
	}
	return strings.EqualFold(link.Scheme, parsedOrigin.Scheme) &&
		strings.EqualFold(link.Host, parsedOrigin.Host)
}
