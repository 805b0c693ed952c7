// backend/src/handlers/extraction_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/username/dealparse/backend/src/database"
	"github.com/username/dealparse/backend/src/logger"
	"github.com/username/dealparse/backend/src/model"
	"github.com/username/dealparse/backend/src/models"
	"github.com/username/dealparse/backend/src/services"
	"github.com/username/dealparse/backend/src/utils"
)

type ExtractionHandler struct {
	extractionService services.ExtractionService
	sessionService    services.SessionService
}

func NewExtractionHandler(extractionService services.ExtractionService, sessionService services.SessionService) *ExtractionHandler {
	return &ExtractionHandler{
		extractionService: extractionService,
		sessionService:    sessionService,
	}
}

type extractRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

// HandleExtract runs extraction over already-decoded text submitted as
// JSON, for callers that do their own document handling.
func (h *ExtractionHandler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxLogger.Warn("Failed to decode extract request", "error", err)
		utils.SendJSONError(w, "invalid JSON body; expected {text, mode}", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		utils.SendJSONError(w, "text is required", http.StatusBadRequest)
		return
	}

	mode := strings.ToLower(req.Mode)
	if mode == "" {
		mode = ModeFreeText
	}

	var result *models.ExtractionResult
	switch mode {
	case ModeStructured:
		result = h.extractionService.ExtractStructured(req.Text)
	case ModeFreeText:
		result = h.extractionService.ExtractFreeText(r.Context(), req.Text)
	default:
		utils.SendJSONError(w, "mode must be 'structured' or 'freetext'", http.StatusBadRequest)
		return
	}

	// Direct text extractions are audited and session-registered the
	// same way uploads are.
	documentID := h.sessionService.Put(result)
	persistExtractionRun(r, documentID, "", mode, result)

	utils.SendJSONResponse(w, map[string]any{
		"mode":        mode,
		"document_id": documentID,
		"result":      result,
	}, http.StatusOK)
}

// HandleGetDocument re-serves a stored extraction result by its session
// document ID.
func (h *ExtractionHandler) HandleGetDocument(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")
	result, found := h.sessionService.Get(documentID)
	if !found {
		utils.SendJSONError(w, "unknown or expired document ID", http.StatusNotFound)
		return
	}
	utils.SendJSONResponse(w, map[string]any{
		"document_id": documentID,
		"result":      result,
	}, http.StatusOK)
}

// HandleListExtractions returns the most recent audit rows.
func (h *ExtractionHandler) HandleListExtractions(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	runs, err := model.ListRecentExtractionRuns(database.DB, limit)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list extraction runs", "error", err)
		utils.SendJSONError(w, "failed to list extractions", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []model.ExtractionRun{}
	}
	utils.SendJSONResponse(w, map[string]any{"extractions": runs}, http.StatusOK)
}
