// backend/src/ner/mapper_test.go
package ner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/dealparse/backend/src/models"
)

func TestMapToSchemaLongestOrgWins(t *testing.T) {
	spans := []models.NEREntity{
		{EntityGroup: "ORG", Word: "ABC"},
		{EntityGroup: "ORG", Word: "Global Mega Bank AG"},
		{EntityGroup: "ORG", Word: "XYZ Corp"},
	}
	entities := MapToSchema(spans, "")
	assert.Equal(t, "Global Mega Bank AG", entities["Counterparty"])
}

func TestMapToSchemaOrgTieKeepsFirstOccurrence(t *testing.T) {
	spans := []models.NEREntity{
		{EntityGroup: "ORG", Word: "First Bank"},
		{EntityGroup: "ORG", Word: "Other Bank"},
	}
	entities := MapToSchema(spans, "")
	assert.Equal(t, "First Bank", entities["Counterparty"])
}

func TestMapToSchemaDateAndMoneyNormalized(t *testing.T) {
	spans := []models.NEREntity{
		{EntityGroup: "DATE", Word: "15 March 2024"},
		{EntityGroup: "DATE", Word: "1 April 2025"},
		{EntityGroup: "MONEY", Word: "USD 1.5 million"},
	}
	entities := MapToSchema(spans, "")

	assert.Equal(t, "2024-03-15", entities["Date"])

	notional, ok := entities["Notional"].(*models.MoneyValue)
	require.True(t, ok)
	assert.Equal(t, 1.5, notional.Amount)
	assert.Equal(t, "USD", notional.Currency)
	assert.Equal(t, "million", notional.Unit)
}

func TestMapToSchemaTickerFloatOverridesProductSpan(t *testing.T) {
	spans := []models.NEREntity{
		{EntityGroup: "MISC", Word: "Equity Basket"},
	}

	entities := MapToSchema(spans, "note references ACME FLOAT paper")
	assert.Equal(t, "ACME", entities["Underlying"])

	entities = MapToSchema(spans, "no explicit ticker in this text")
	assert.Equal(t, "Equity Basket", entities["Underlying"])
}

func TestMapToSchemaMoneyWithoutAmountOmitted(t *testing.T) {
	spans := []models.NEREntity{
		{EntityGroup: "MONEY", Word: "some dollars"},
	}
	entities := MapToSchema(spans, "")
	_, found := entities["Notional"]
	assert.False(t, found)
}

func TestMapToSchemaEmptySpans(t *testing.T) {
	entities := MapToSchema(nil, "plain text")
	assert.Empty(t, entities)
}
