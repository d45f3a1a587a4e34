package fhir_dto

type Period struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

type HumanName struct {
	Use    string   `json:"use,omitempty"`
	Text   string   `json:"text,omitempty"`
	Family string   `json:"family,omitempty"`
	Given  []string `json:"given,omitempty"`
	Prefix []string `json:"prefix,omitempty"`
	Suffix []string `json:"suffix,omitempty"`
	Period *Period  `json:"period,omitempty"`
}

func (n HumanName) Clone() HumanName {
	clone := n
	clone.Given = cloneStrings(n.Given)
	clone.Prefix = cloneStrings(n.Prefix)
	clone.Suffix = cloneStrings(n.Suffix)
	if n.Period != nil {
		period := *n.Period
		clone.Period = &period
	}
	return clone
}

type ContactPoint struct {
	System string  `json:"system,omitempty"`
	Value  string  `json:"value,omitempty"`
	Use    string  `json:"use,omitempty"`
	Rank   int     `json:"rank,omitempty"`
	Period *Period `json:"period,omitempty"`
}

func (c ContactPoint) Clone() ContactPoint {
	clone := c
	if c.Period != nil {
		period := *c.Period
		clone.Period = &period
	}
	return clone
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append([]string(nil), values...)
}
