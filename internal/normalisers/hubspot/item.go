// Package hubspot converts raw HubSpot CRM records into canonical
// integration items.
package hubspot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/forgepoint/hublink/internal/core/domain"
)

// defaultAppBaseURL is the HubSpot web app used for canonical record URLs.
const defaultAppBaseURL = "https://app.hubspot.com"

// Result is the outcome of normalising one record. Mapping never fails
// outright: a record that cannot be mapped produces the degraded placeholder
// with Degraded set and Err carrying the cause, so callers can decide
// whether to count, skip or surface it.
type Result struct {
	Item     domain.IntegrationItem
	Degraded bool
	Err      error
}

// Normaliser maps raw vendor records to integration items.
type Normaliser struct {
	appBaseURL string
}

// New creates a normaliser. An empty appBaseURL falls back to the public
// HubSpot app URL.
func New(appBaseURL string) *Normaliser {
	if appBaseURL == "" {
		appBaseURL = defaultAppBaseURL
	}
	return &Normaliser{appBaseURL: strings.TrimRight(appBaseURL, "/")}
}

// TypeFor maps a vendor collection name ("contacts") to the canonical object
// type. Unrecognised collections are capitalised verbatim so search over
// custom objects still yields a usable type label.
func TypeFor(vendorType string) domain.ObjectType {
	switch vendorType {
	case "contacts":
		return domain.ObjectTypeContact
	case "companies":
		return domain.ObjectTypeCompany
	case "deals":
		return domain.ObjectTypeDeal
	default:
		return domain.ObjectType(capitalise(vendorType))
	}
}

// NormaliseObject builds the canonical item for one vendor record.
func (n *Normaliser) NormaliseObject(raw *domain.RawObject, objectType domain.ObjectType) Result {
	if raw == nil {
		return n.degraded(nil, errors.New("nil record"))
	}
	if raw.ID == "" {
		return n.degraded(raw, errors.New("record has no id"))
	}
	if raw.Properties == nil {
		return n.degraded(raw, errors.New("record has no properties"))
	}

	props := raw.Properties
	parentID, parentName := parentInfo(raw, objectType)

	item := domain.IntegrationItem{
		ID:               fmt.Sprintf("hubspot_%s_%s", objectType, raw.ID),
		Type:             objectType,
		Directory:        directoryStatus(raw, objectType),
		ParentID:         parentID,
		ParentName:       parentName,
		Name:             DisplayName(props, objectType),
		CreationTime:     domain.ParseTimestamp(firstNonEmpty(raw.CreatedAt, props["createdate"])),
		LastModifiedTime: domain.ParseTimestamp(firstNonEmpty(raw.UpdatedAt, props["lastmodifieddate"])),
		URL:              n.webURL(objectType, raw.ID),
		Visibility:       true,
		Email:            props["email"],
		Phone:            props["phone"],
		APIResponse:      raw,
	}
	return Result{Item: item}
}

// degraded builds the placeholder item for a record that could not be
// mapped. The item still exists so batch sizes are preserved downstream.
func (n *Normaliser) degraded(raw *domain.RawObject, cause error) Result {
	id := "unknown"
	if raw != nil && raw.ID != "" {
		id = raw.ID
	}
	return Result{
		Item: domain.IntegrationItem{
			ID:         "hubspot_unknown_" + id,
			Name:       "Unknown (Processing Error)",
			Type:       domain.ObjectTypeUnknown,
			Visibility: false,
		},
		Degraded: true,
		Err:      cause,
	}
}

// DisplayName computes the display name for a record per object type.
func DisplayName(props map[string]string, objectType domain.ObjectType) string {
	switch objectType {
	case domain.ObjectTypeContact:
		return contactName(props)
	case domain.ObjectTypeCompany:
		return companyName(props)
	case domain.ObjectTypeDeal:
		return dealName(props)
	default:
		return fmt.Sprintf("%s Item", objectType)
	}
}

func contactName(props map[string]string) string {
	firstname := props["firstname"]
	lastname := props["lastname"]
	if firstname != "" || lastname != "" {
		name := strings.TrimSpace(firstname + " " + lastname)
		if company := props["company"]; company != "" {
			return fmt.Sprintf("%s (%s)", name, company)
		}
		return name
	}
	if email := props["email"]; email != "" {
		return email
	}
	return "Unnamed Contact"
}

func companyName(props map[string]string) string {
	if name := props["name"]; name != "" {
		if industry := props["industry"]; industry != "" {
			return fmt.Sprintf("%s - %s", name, industry)
		}
		return name
	}
	if domainName := props["domain"]; domainName != "" {
		return fmt.Sprintf("Company (%s)", domainName)
	}
	return "Unnamed Company"
}

func dealName(props map[string]string) string {
	if dealname := props["dealname"]; dealname != "" {
		if amount := props["amount"]; amount != "" {
			return fmt.Sprintf("%s ($%s)", dealname, amount)
		}
		return dealname
	}
	if amount := props["amount"]; amount != "" {
		return fmt.Sprintf("Deal ($%s)", amount)
	}
	return "Unnamed Deal"
}

// webURL builds the canonical web URL from the per-type template.
func (n *Normaliser) webURL(objectType domain.ObjectType, id string) string {
	switch objectType {
	case domain.ObjectTypeContact:
		return fmt.Sprintf("%s/contacts/contacts/%s", n.appBaseURL, id)
	case domain.ObjectTypeCompany:
		return fmt.Sprintf("%s/contacts/companies/%s", n.appBaseURL, id)
	case domain.ObjectTypeDeal:
		return fmt.Sprintf("%s/contacts/deals/%s", n.appBaseURL, id)
	default:
		return fmt.Sprintf("%s/contacts/%s", n.appBaseURL, id)
	}
}

// parentInfo extracts the informational back-reference per object type:
// contacts point at their first associated company; deals prefer a company,
// then a contact; companies have no parent.
func parentInfo(raw *domain.RawObject, objectType domain.ObjectType) (parentID, parentName string) {
	switch objectType {
	case domain.ObjectTypeContact:
		if companies := raw.Association("companies"); len(companies) > 0 {
			return "hubspot_company_" + companies[0].ID, "Company"
		}
	case domain.ObjectTypeDeal:
		if companies := raw.Association("companies"); len(companies) > 0 {
			return "hubspot_company_" + companies[0].ID, "Company"
		}
		if contacts := raw.Association("contacts"); len(contacts) > 0 {
			return "hubspot_contact_" + contacts[0].ID, "Contact"
		}
	}
	return "", ""
}

// directoryStatus reports whether the record has dependent children:
// companies with at least one associated contact or deal, contacts with more
// than one associated deal. Deals are never directories.
func directoryStatus(raw *domain.RawObject, objectType domain.ObjectType) bool {
	switch objectType {
	case domain.ObjectTypeCompany:
		return len(raw.Association("contacts")) > 0 || len(raw.Association("deals")) > 0
	case domain.ObjectTypeContact:
		return len(raw.Association("deals")) > 1
	default:
		return false
	}
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// capitalise upper-cases the first rune of a vendor collection name.
func capitalise(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
