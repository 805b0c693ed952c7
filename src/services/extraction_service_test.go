// backend/src/services/extraction_service_test.go
package services

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/dealparse/backend/src/logger"
	"github.com/username/dealparse/backend/src/models"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

// stubRecognizer implements ner.Recognizer for orchestration tests.
type stubRecognizer struct {
	probeErr     error
	recognizeErr error
	spans        []models.NEREntity
}

func (s *stubRecognizer) Probe(ctx context.Context) error {
	return s.probeErr
}

func (s *stubRecognizer) Recognize(ctx context.Context, text string) ([]models.NEREntity, error) {
	if s.recognizeErr != nil {
		return nil, s.recognizeErr
	}
	return s.spans, nil
}

func TestExtractFreeTextWithoutRecognizer(t *testing.T) {
	svc := NewExtractionService(nil)

	result := svc.ExtractFreeText(context.Background(), "BANK ALPHA notional EUR 25 mio")

	require.NotNil(t, result)
	assert.Equal(t, EngineRegex, result.Engine)
	assert.Nil(t, result.RawNER)
	assert.Equal(t, "BANK ALPHA", result.Entities["Counterparty"])
}

func TestExtractFreeTextProbeFailureDegradesToRegex(t *testing.T) {
	svc := NewExtractionService(&stubRecognizer{probeErr: errors.New("connection refused")})

	result := svc.ExtractFreeText(context.Background(), "BANK ALPHA notional EUR 25 mio")

	assert.Equal(t, EngineRegex, result.Engine)
	assert.Equal(t, "BANK ALPHA", result.Entities["Counterparty"])
}

func TestExtractFreeTextRuntimeFailureDegradesToRegex(t *testing.T) {
	svc := NewExtractionService(&stubRecognizer{recognizeErr: errors.New("model crashed")})

	result := svc.ExtractFreeText(context.Background(), "BANK ALPHA notional EUR 25 mio")

	assert.Equal(t, EngineRegex, result.Engine)
	assert.Nil(t, result.RawNER)
}

func TestExtractFreeTextStatisticalEngineWithOverlay(t *testing.T) {
	spans := []models.NEREntity{
		{EntityGroup: "ORG", Word: "Statistical Counterparty Ltd"},
		{EntityGroup: "DATE", Word: "15 March 2024"},
	}
	svc := NewExtractionService(&stubRecognizer{spans: spans})

	// The text also carries a regex-extractable counterparty; the
	// generic overlay must win on that key.
	result := svc.ExtractFreeText(context.Background(), "BANK ALPHA quarterly payments")

	assert.Equal(t, EngineStatistical, result.Engine)
	assert.Equal(t, spans, result.RawNER)
	assert.Equal(t, "BANK ALPHA", result.Entities["Counterparty"])
	assert.Equal(t, "2024-03-15", result.Entities["Date"])
	assert.Equal(t, "Quarterly", result.Entities["PaymentFrequency"])
}

func TestExtractFreeTextUnmatchedTextStillWellFormed(t *testing.T) {
	svc := NewExtractionService(nil)

	result := svc.ExtractFreeText(context.Background(), "the quick brown fox")

	require.NotNil(t, result)
	assert.Empty(t, result.Entities)
	assert.Equal(t, 0.0, result.ConfidenceScore)
	assert.Equal(t, EngineRegex, result.Engine)
}

func TestExtractStructuredDelegates(t *testing.T) {
	svc := NewExtractionService(nil)

	result := svc.ExtractStructured("Party A: ABC Bank\nParty B: XYZ Corp")

	assert.Equal(t, "ABC Bank", result.Entities["PartyA"])
	assert.Equal(t, "XYZ Corp", result.Entities["PartyB"])
	assert.Equal(t, "structured_financial_document", result.DocumentType)
}

func TestMergeEntitiesOverrideReplacesLeaves(t *testing.T) {
	base := map[string]any{"Counterparty": "ABC"}
	override := map[string]any{"Counterparty": "XYZ", "Date": "2020-01-01"}

	merged := MergeEntities(base, override)

	assert.Equal(t, map[string]any{"Counterparty": "XYZ", "Date": "2020-01-01"}, merged)
}

func TestMergeEntitiesNestedMapsMergeKeyByKey(t *testing.T) {
	base := map[string]any{
		"Notional": map[string]any{"amount": 5.0, "currency": "USD", "unit": "million"},
	}
	override := map[string]any{
		"Notional": map[string]any{"amount": 1.5},
	}

	merged := MergeEntities(base, override)

	notional := merged["Notional"].(map[string]any)
	assert.Equal(t, 1.5, notional["amount"])
	assert.Equal(t, "USD", notional["currency"])
	assert.Equal(t, "million", notional["unit"])
}

func TestMergeEntitiesNonMapOverrideReplacesRicherBase(t *testing.T) {
	base := map[string]any{
		"Underlying": map[string]any{"name": "Fin Corp", "isin": "XS0123456789"},
	}
	override := map[string]any{"Underlying": "ACME"}

	merged := MergeEntities(base, override)
	assert.Equal(t, "ACME", merged["Underlying"])
}

func TestMergeEntitiesDoesNotMutateInputs(t *testing.T) {
	base := map[string]any{"A": "base"}
	override := map[string]any{"A": "override"}

	MergeEntities(base, override)

	assert.Equal(t, "base", base["A"])
	assert.Equal(t, "override", override["A"])
}
