package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrationItem_ToMap(t *testing.T) {
	raw := &RawObject{ID: "42", Properties: map[string]string{"email": "ada@example.com"}}
	item := IntegrationItem{
		ID:               "hubspot_Contact_42",
		Type:             ObjectTypeContact,
		ParentID:         "hubspot_company_7",
		ParentName:       "Company",
		Name:             "Ada Lovelace",
		CreationTime:     ParseTimestamp("2023-01-01T00:00:00Z"),
		LastModifiedTime: ParseTimestamp("garbage"),
		URL:              "https://app.hubspot.com/contacts/contacts/42",
		Visibility:       true,
		Email:            "ada@example.com",
		APIResponse:      raw,
	}

	m := item.ToMap()

	assert.Equal(t, "hubspot_Contact_42", m["id"])
	assert.Equal(t, "Contact", m["type"])
	assert.Equal(t, false, m["directory"])
	assert.Equal(t, "Company", m["parent_path_or_name"])
	assert.Equal(t, "hubspot_company_7", m["parent_id"])
	assert.Equal(t, "2023-01-01T00:00:00Z", m["creation_time"])
	assert.Equal(t, "garbage", m["last_modified_time"])
	assert.Equal(t, true, m["visibility"])
	assert.Equal(t, "ada@example.com", m["email"])
	assert.Same(t, raw, m["api_response"])
}

func TestIntegrationItem_ToMap_AbsentFieldsAreNull(t *testing.T) {
	item := IntegrationItem{ID: "hubspot_Deal_1", Type: ObjectTypeDeal, Name: "Unnamed Deal", Visibility: true}

	m := item.ToMap()

	require.Contains(t, m, "parent_id")
	assert.Nil(t, m["parent_id"])
	assert.Nil(t, m["parent_path_or_name"])
	assert.Nil(t, m["creation_time"])
	assert.Nil(t, m["last_modified_time"])
	assert.Nil(t, m["url"])
	assert.Nil(t, m["email"])
	assert.Nil(t, m["phone"])
}

func TestRawObject_Association(t *testing.T) {
	raw := &RawObject{
		ID: "1",
		Associations: map[string]AssociationList{
			"companies": {Results: []AssociationRef{{ID: "9"}}},
		},
	}

	assert.Len(t, raw.Association("companies"), 1)
	assert.Nil(t, raw.Association("deals"))

	var empty RawObject
	assert.Nil(t, empty.Association("companies"))
}
