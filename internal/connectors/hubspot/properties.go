package hubspot

// Vendor object collections this connector fetches.
const (
	CollectionContacts  = "contacts"
	CollectionCompanies = "companies"
	CollectionDeals     = "deals"
)

// DefaultProperties returns the fixed property list requested for each
// object type. Unrecognised types get the minimal name/id pair.
func DefaultProperties(objectType string) []string {
	switch objectType {
	case CollectionContacts:
		return []string{
			"firstname", "lastname", "email", "company",
			"jobtitle", "createdate", "lastmodifieddate", "hs_object_id",
		}
	case CollectionCompanies:
		return []string{
			"name", "domain", "industry", "city", "phone", "website",
			"createdate", "hs_lastmodifieddate", "hs_object_id",
		}
	case CollectionDeals:
		return []string{
			"dealname", "amount", "dealstage", "pipeline", "closedate",
			"createdate", "hs_lastmodifieddate", "hs_object_id",
		}
	default:
		return []string{"name", "hs_object_id"}
	}
}

// AssociationsFor returns the association list requested for each object
// type. Unrecognised types have none.
func AssociationsFor(objectType string) []string {
	switch objectType {
	case CollectionContacts:
		return []string{"companies", "deals"}
	case CollectionCompanies:
		return []string{"contacts", "deals"}
	case CollectionDeals:
		return []string{"contacts", "companies"}
	default:
		return nil
	}
}
