// backend/src/services/extraction_service.go
package services

import (
	"context"
	"time"

	"github.com/username/dealparse/backend/src/logger"
	"github.com/username/dealparse/backend/src/models"
	"github.com/username/dealparse/backend/src/ner"
	"github.com/username/dealparse/backend/src/parsers"
	"github.com/username/dealparse/backend/src/parsers/freetext"
	"github.com/username/dealparse/backend/src/parsers/structured"
)

// Engine tags recorded on free-text extraction results.
const (
	EngineStatistical = "huggingface"
	EngineRegex       = "regex"
)

type extractionServiceImpl struct {
	structuredParser parsers.StructuredParser
	freeTextParser   parsers.FreeTextParser
	recognizer       ner.Recognizer // nil when no statistical engine is configured
}

// NewExtractionService wires the extraction orchestrator. A nil
// recognizer means the statistical engine is permanently unavailable
// and the free-text path runs regex-only.
func NewExtractionService(recognizer ner.Recognizer) ExtractionService {
	return &extractionServiceImpl{
		structuredParser: structured.NewParser(),
		freeTextParser:   freetext.NewParser(),
		recognizer:       recognizer,
	}
}

func (s *extractionServiceImpl) ExtractStructured(text string) *models.ExtractionResult {
	return s.structuredParser.Parse(text)
}

// ExtractFreeText probes the statistical recognizer, runs it when
// available, and always overlays the generic finance rules over the
// same raw text. Recognizer unavailability or runtime failure degrades
// to the regex-only engine and is never surfaced as an error.
func (s *extractionServiceImpl) ExtractFreeText(ctx context.Context, text string) *models.ExtractionResult {
	engine := EngineRegex
	base := make(map[string]any)
	var rawSpans []models.NEREntity

	if s.recognizer != nil {
		if err := s.recognizer.Probe(ctx); err != nil {
			logger.L.Warn("Statistical recognizer unavailable, using regex engine", "error", err)
		} else if spans, err := s.recognizer.Recognize(ctx, text); err != nil {
			logger.L.Warn("Statistical recognizer failed, degrading to regex engine", "error", err)
		} else {
			engine = EngineStatistical
			rawSpans = spans
			base = ner.MapToSchema(spans, text)
		}
	}

	overlay := s.freeTextParser.Parse(text)
	entities := MergeEntities(base, overlay)

	return &models.ExtractionResult{
		ExtractionTimestamp: time.Now().Format(time.RFC3339),
		Entities:            entities,
		ConfidenceScore:     structured.ConfidenceScore(entities),
		Engine:              engine,
		RawNER:              rawSpans,
	}
}

// MergeEntities combines a base entity map with an override map. For
// each override key: when both sides hold nested maps the maps merge
// key-by-key with override leaves winning; any other override value
// replaces the base value outright, even if the base held a richer
// structure at that key.
func MergeEntities(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		baseMap, baseOK := out[k].(map[string]any)
		overrideMap, overrideOK := v.(map[string]any)
		if baseOK && overrideOK {
			merged := make(map[string]any, len(baseMap)+len(overrideMap))
			for kk, vv := range baseMap {
				merged[kk] = vv
			}
			for kk, vv := range overrideMap {
				merged[kk] = vv
			}
			out[k] = merged
			continue
		}
		out[k] = v
	}
	return out
}
