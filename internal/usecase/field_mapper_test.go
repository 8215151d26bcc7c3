package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapHeadersBasic(t *testing.T) {
	hm, err := MapHeaders([]string{"Full Name", "Mobile", "Email ID"})
	require.NoError(t, err)

	assert.Equal(t, 0, hm.Col(FieldName))
	assert.Equal(t, 1, hm.Col(FieldPhone))
	assert.Equal(t, 2, hm.Col(FieldEmail))
	assert.Equal(t, -1, hm.Col(FieldBudget))
}

func TestMapHeadersMissingRequired(t *testing.T) {
	headers := []string{"Budget", "Location", "Notes"}
	_, err := MapHeaders(headers)

	var missing *MissingRequiredColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, headers, missing.Headers)
}

func TestMapHeadersMissingPhoneOnly(t *testing.T) {
	_, err := MapHeaders([]string{"Name", "Email", "City"})

	var missing *MissingRequiredColumnsError
	assert.ErrorAs(t, err, &missing)
}

func TestMapHeadersPropertyTypeBeatsLooserRules(t *testing.T) {
	hm, err := MapHeaders([]string{"Name", "Phone", "Property Type", "Lead Type"})
	require.NoError(t, err)

	assert.Equal(t, 2, hm.Col(FieldPropertyType))
	assert.Equal(t, 3, hm.Col(FieldLeadType))
}

func TestMapHeadersContactPhoneClaimedByPhone(t *testing.T) {
	// "Contact Phone" must map to phone, not to the extended contact field.
	hm, err := MapHeaders([]string{"Owner Name", "Contact Phone", "Contact Person"})
	require.NoError(t, err)

	assert.Equal(t, 1, hm.Col(FieldPhone))
	assert.Equal(t, 2, hm.Col(FieldContact))
	assert.Equal(t, 0, hm.Col(FieldName)) // "owner name" contains "name"
}

func TestMapHeadersOneColumnPerField(t *testing.T) {
	hm, err := MapHeaders([]string{"Name", "Customer Name", "Phone", "Phone 2"})
	require.NoError(t, err)

	// first matching column wins; the second name-ish and phone-ish
	// columns stay unmapped
	assert.Equal(t, 0, hm.Col(FieldName))
	assert.Equal(t, 2, hm.Col(FieldPhone))
}

func TestMapHeadersSellerSheet(t *testing.T) {
	hm, err := MapHeaders([]string{
		"Owner Name", "Mobile", "Plot No", "Size", "Direction",
		"Price", "Negotiable", "Address", "Landmark", "Commission", "Water",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, hm.Col(FieldPhone))
	assert.Equal(t, 2, hm.Col(FieldPlotNo))
	assert.Equal(t, 3, hm.Col(FieldSize))
	assert.Equal(t, 4, hm.Col(FieldDirection))
	assert.Equal(t, 5, hm.Col(FieldPrice))
	assert.Equal(t, 6, hm.Col(FieldNegotiable))
	assert.Equal(t, 7, hm.Col(FieldAddress))
	assert.Equal(t, 8, hm.Col(FieldLandmark))
	assert.Equal(t, 9, hm.Col(FieldCommission))
	assert.Equal(t, 10, hm.Col(FieldWater))
}

func TestMapHeadersEmailAddressIsEmail(t *testing.T) {
	hm, err := MapHeaders([]string{"Name", "Phone", "Email Address"})
	require.NoError(t, err)

	assert.Equal(t, 2, hm.Col(FieldEmail))
	assert.Equal(t, -1, hm.Col(FieldAddress))
}
