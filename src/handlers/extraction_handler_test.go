// backend/src/handlers/extraction_handler_test.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/dealparse/backend/src/logger"
	"github.com/username/dealparse/backend/src/services"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

func newTestExtractionHandler() *ExtractionHandler {
	sessionService := services.NewSessionService(cache.New(time.Minute, time.Minute))
	return NewExtractionHandler(services.NewExtractionService(nil), sessionService)
}

type extractResponse struct {
	Mode       string         `json:"mode"`
	DocumentID string         `json:"document_id"`
	Result     map[string]any `json:"result"`
}

func TestHandleExtractRegistersDocumentSession(t *testing.T) {
	h := newTestExtractionHandler()

	body := `{"text": "Party A: ABC Bank\nParty B: XYZ Corp", "mode": "structured"}`
	req := httptest.NewRequest(http.MethodPost, "/api/extract", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleExtract(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp extractResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ModeStructured, resp.Mode)
	require.NotEmpty(t, resp.DocumentID)

	entities, ok := resp.Result["entities"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ABC Bank", entities["PartyA"])

	// The run is addressable afterwards, exactly like an upload.
	getReq := httptest.NewRequest(http.MethodGet, "/api/documents/"+resp.DocumentID, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("documentID", resp.DocumentID)
	getReq = getReq.WithContext(context.WithValue(getReq.Context(), chi.RouteCtxKey, rctx))

	getRec := httptest.NewRecorder()
	h.HandleGetDocument(getRec, getReq)
	assert.Equal(t, http.StatusOK, getRec.Code)
}

func TestHandleExtractDefaultsToFreeText(t *testing.T) {
	h := newTestExtractionHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/extract", strings.NewReader(`{"text": "BANK ALPHA notional EUR 25 mio"}`))
	rec := httptest.NewRecorder()
	h.HandleExtract(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp extractResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ModeFreeText, resp.Mode)
	assert.NotEmpty(t, resp.DocumentID)
}

func TestHandleExtractRejectsBadInput(t *testing.T) {
	h := newTestExtractionHandler()

	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{not json`},
		{"empty text", `{"text": "   "}`},
		{"unknown mode", `{"text": "some text", "mode": "telepathy"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/extract", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.HandleExtract(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleGetDocumentUnknownID(t *testing.T) {
	h := newTestExtractionHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/documents/missing", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("documentID", "missing")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	h.HandleGetDocument(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
