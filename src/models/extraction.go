// backend/src/models/extraction.go
package models

// MoneyValue is the normalized representation of a monetary phrase.
// Amount is always the raw numeric literal found in the text; the scale
// word (million, billion, thousand) is reported separately in Unit and
// is never multiplied in. Consumers that need the absolute amount apply
// the scale themselves.
type MoneyValue struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency,omitempty"`
	Unit     string  `json:"unit,omitempty"`
}

// BarrierValue is a percentage threshold, optionally anchored to a
// reference price. Reference holds at most a single token (see
// parsers.ParseBarrier).
type BarrierValue struct {
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
	Reference string  `json:"reference,omitempty"`
}

// UnderlyingValue identifies the referenced instrument of a deal.
type UnderlyingValue struct {
	Name     string `json:"name"`
	ISIN     string `json:"isin"`
	Ticker   string `json:"ticker"`
	Exchange string `json:"exchange,omitempty"`
}

// EquityPayments groups the initial and final share price fields. It is
// only emitted when at least one of the two is present.
type EquityPayments struct {
	InitialPrice string `json:"InitialPrice,omitempty"`
	FinalPrice   string `json:"FinalPrice,omitempty"`
}

// NEREntity is a raw span returned by the statistical recognizer.
type NEREntity struct {
	EntityGroup string  `json:"entity_group"`
	Word        string  `json:"word"`
	Score       float64 `json:"score,omitempty"`
	Start       int     `json:"start,omitempty"`
	End         int     `json:"end,omitempty"`
}

// ExtractionResult is the JSON-shaped output of both extraction
// strategies. Entities never contains nil values; absent fields are
// omitted entirely. Engine and RawNER are only set on the free-text
// path, DocumentType only on the structured path.
type ExtractionResult struct {
	DocumentType        string         `json:"document_type,omitempty"`
	ExtractionTimestamp string         `json:"extraction_timestamp,omitempty"`
	Entities            map[string]any `json:"entities"`
	ConfidenceScore     float64        `json:"confidence_score"`
	Engine              string         `json:"_engine,omitempty"`
	RawNER              []NEREntity    `json:"_raw_ner,omitempty"`
}
