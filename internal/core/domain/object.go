package domain

// RawObject is one vendor CRM record as returned by the collection and
// search endpoints. It is decoded once at the transport boundary and passed
// through to the canonical item untouched.
type RawObject struct {
	ID           string                     `json:"id"`
	Properties   map[string]string          `json:"properties"`
	CreatedAt    string                     `json:"createdAt,omitempty"`
	UpdatedAt    string                     `json:"updatedAt,omitempty"`
	Associations map[string]AssociationList `json:"associations,omitempty"`
	Archived     bool                       `json:"archived,omitempty"`
}

// AssociationList holds the associated records of one type.
type AssociationList struct {
	Results []AssociationRef `json:"results"`
}

// AssociationRef points at an associated vendor record.
type AssociationRef struct {
	ID   string `json:"id"`
	Type string `json:"type,omitempty"`
}

// Association returns the associated records for the given vendor type
// (e.g. "companies"). Returns nil when the record carries no associations.
func (o *RawObject) Association(vendorType string) []AssociationRef {
	if o.Associations == nil {
		return nil
	}
	return o.Associations[vendorType].Results
}
