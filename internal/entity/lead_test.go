package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSource(t *testing.T) {
	cases := map[string]string{
		"call":       "call",
		"WhatsApp":   "whatsapp",
		"  website ": "website",
		"referral":   "referral",
		"Google Ads": "call",
		"":           "call",
		"unknown":    "call",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeSource(input), "input %q", input)
	}
}

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]string{
		"new":       "new",
		"Contacted": "contacted",
		"QUALIFIED": "qualified",
		"converted": "converted",
		"lost":      "lost",
		"open":      "new",
		"":          "new",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeStatus(input), "input %q", input)
	}
}

func TestNormalizePriority(t *testing.T) {
	cases := map[string]string{
		"low":    "low",
		"Medium": "medium",
		"HIGH":   "high",
		"urgent": "medium",
		"":       "medium",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizePriority(input), "input %q", input)
	}
}

func TestNormalizeLeadType(t *testing.T) {
	assert.Equal(t, "seller", NormalizeLeadType("Looking to SELL my plot"))
	assert.Equal(t, "buyer", NormalizeLeadType("wants to buy a flat"))
	assert.Equal(t, "buyer", NormalizeLeadType(""))
	assert.Equal(t, "buyer", NormalizeLeadType("investor"))
	// selling intent wins when both words appear
	assert.Equal(t, "seller", NormalizeLeadType("sell now, buy later"))
}

func TestConversionRate(t *testing.T) {
	assert.Equal(t, 0.0, ConversionRate(0, 0))
	assert.Equal(t, 0.0, ConversionRate(0, 10))
	assert.Equal(t, 50.0, ConversionRate(5, 10))
	assert.Equal(t, 33.3, ConversionRate(1, 3))
	assert.Equal(t, 66.7, ConversionRate(2, 3))
	assert.Equal(t, 100.0, ConversionRate(7, 7))
}
