package fhir_dto

import "github.com/goccy/go-json"

type Bundle struct {
	ResourceType string        `json:"resourceType"`
	ID           string        `json:"id,omitempty"`
	Type         string        `json:"type,omitempty"`
	Total        int           `json:"total,omitempty"`
	Link         []BundleLink  `json:"link,omitempty"`
	Entry        []BundleEntry `json:"entry,omitempty"`
}

type BundleLink struct {
	Relation string `json:"relation"`
	Url      string `json:"url"`
}

type BundleEntry struct {
	FullUrl  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource,omitempty"`
}

// LinkURL returns the url of the first link with the given relation.
func (b *Bundle) LinkURL(relation string) string {
	if b == nil {
		return ""
	}
	for _, link := range b.Link {
		if link.Relation == relation {
			return link.Url
		}
	}
	return ""
}
