package fhir_dto

import (
	"patient-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
)

const (
	patientKeyResourceType = "resourceType"
	patientKeyID           = "id"
	patientKeyName         = "name"
	patientKeyTelecom      = "telecom"
	patientKeyGender       = "gender"
	patientKeyBirthDate    = "birthDate"
)

// Patient models the parts of a FHIR Patient this service reads or writes.
// Every other top-level element is carried in Other and written back
// unchanged, so a read-modify-write cycle keeps identifiers, addresses,
// meta and extensions intact.
type Patient struct {
	ResourceType string
	ID           string
	Name         []HumanName
	Telecom      []ContactPoint
	Gender       string
	BirthDate    string
	Other        map[string]json.RawMessage
}

type patientElements struct {
	ResourceType string         `json:"resourceType,omitempty"`
	ID           string         `json:"id,omitempty"`
	Name         []HumanName    `json:"name,omitempty"`
	Telecom      []ContactPoint `json:"telecom,omitempty"`
	Gender       string         `json:"gender,omitempty"`
	BirthDate    string         `json:"birthDate,omitempty"`
}

func (p *Patient) UnmarshalJSON(data []byte) error {
	var elements patientElements
	if err := json.Unmarshal(data, &elements); err != nil {
		return err
	}

	var other map[string]json.RawMessage
	if err := json.Unmarshal(data, &other); err != nil {
		return err
	}
	for _, key := range []string{
		patientKeyResourceType,
		patientKeyID,
		patientKeyName,
		patientKeyTelecom,
		patientKeyGender,
		patientKeyBirthDate,
	} {
		delete(other, key)
	}
	if len(other) == 0 {
		other = nil
	}

	*p = Patient{
		ResourceType: elements.ResourceType,
		ID:           elements.ID,
		Name:         elements.Name,
		Telecom:      elements.Telecom,
		Gender:       elements.Gender,
		BirthDate:    elements.BirthDate,
		Other:        other,
	}
	return nil
}

// MarshalJSON writes Telecom whenever it is non-nil, so an explicitly empty
// contact list is sent as [].
func (p Patient) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(p.Other)+6)
	for key, value := range p.Other {
		out[key] = value
	}
	if p.ResourceType != "" {
		out[patientKeyResourceType] = p.ResourceType
	}
	if p.ID != "" {
		out[patientKeyID] = p.ID
	}
	if len(p.Name) > 0 {
		out[patientKeyName] = p.Name
	}
	if p.Telecom != nil {
		out[patientKeyTelecom] = p.Telecom
	}
	if p.Gender != "" {
		out[patientKeyGender] = p.Gender
	}
	if p.BirthDate != "" {
		out[patientKeyBirthDate] = p.BirthDate
	}
	return json.Marshal(out)
}

func (p *Patient) IsPatient() bool {
	return p != nil && p.ResourceType == constvars.ResourcePatient
}

// Clone returns a copy that shares no slices with p.
func (p *Patient) Clone() *Patient {
	if p == nil {
		return nil
	}
	clone := *p
	if p.Name != nil {
		clone.Name = make([]HumanName, len(p.Name))
		for i, name := range p.Name {
			clone.Name[i] = name.Clone()
		}
	}
	if p.Telecom != nil {
		clone.Telecom = make([]ContactPoint, len(p.Telecom))
		for i, contactPoint := range p.Telecom {
			clone.Telecom[i] = contactPoint.Clone()
		}
	}
	if p.Other != nil {
		clone.Other = make(map[string]json.RawMessage, len(p.Other))
		for key, value := range p.Other {
			clone.Other[key] = value
		}
	}
	return &clone
}

// FirstName returns the first name entry, or the zero value.
func (p *Patient) FirstName() HumanName {
	if p == nil || len(p.Name) == 0 {
		return HumanName{}
	}
	return p.Name[0]
}

// TelecomValue returns the value of the first contact point of the given system.
func (p *Patient) TelecomValue(system string) (string, bool) {
	if p == nil {
		return "", false
	}
	for _, contactPoint := range p.Telecom {
		if contactPoint.System == system {
			return contactPoint.Value, true
		}
	}
	return "", false
}
