package domain

// ObjectType identifies the canonical type of a vendor record.
type ObjectType string

const (
	// ObjectTypeContact is a CRM contact record.
	ObjectTypeContact ObjectType = "Contact"
	// ObjectTypeCompany is a CRM company record.
	ObjectTypeCompany ObjectType = "Company"
	// ObjectTypeDeal is a CRM deal record.
	ObjectTypeDeal ObjectType = "Deal"
	// ObjectTypeUnknown marks records that could not be classified or mapped.
	ObjectTypeUnknown ObjectType = "Unknown"
)

// IntegrationItem is the canonical representation of one vendor record,
// independent of vendor-specific shape. It is constructed per fetched record
// and handed to the caller as a flat mapping; the module keeps no copy.
type IntegrationItem struct {
	// ID is vendor-namespaced and unique within the calling session.
	ID string
	// Type is the canonical object type.
	Type ObjectType
	// Directory is true if the record has dependent children per the
	// vendor-specific rule for its type.
	Directory bool
	// ParentID and ParentName are an informational back-reference, not an
	// ownership pointer.
	ParentID   string
	ParentName string
	// Name is the computed display name.
	Name string
	// CreationTime and LastModifiedTime are optional vendor timestamps.
	CreationTime     *Timestamp
	LastModifiedTime *Timestamp
	// URL is the canonical web URL for the record.
	URL string
	// Children is unused by this adapter but part of the canonical shape.
	Children []string
	// Visibility defaults to true; false signals a degraded record.
	Visibility bool
	// Email and Phone are optional contact fields.
	Email string
	Phone string
	// APIResponse is the raw vendor record, passed through opaquely.
	APIResponse *RawObject
}

// ToMap serialises the item to the flat mapping consumed by callers.
// Timestamps become ISO-8601 strings (or the raw vendor string when parsing
// failed); absent values are null.
func (i *IntegrationItem) ToMap() map[string]any {
	return map[string]any{
		"id":                  i.ID,
		"type":                string(i.Type),
		"directory":           i.Directory,
		"parent_path_or_name": nullable(i.ParentName),
		"parent_id":           nullable(i.ParentID),
		"name":                i.Name,
		"creation_time":       i.CreationTime.Value(),
		"last_modified_time":  i.LastModifiedTime.Value(),
		"url":                 nullable(i.URL),
		"children":            i.Children,
		"visibility":          i.Visibility,
		"email":               nullable(i.Email),
		"phone":               nullable(i.Phone),
		"api_response":        i.APIResponse,
	}
}

// nullable maps the empty string to nil so the serialised form distinguishes
// absent fields from empty ones.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
