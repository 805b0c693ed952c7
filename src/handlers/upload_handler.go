// backend/src/handlers/upload_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/username/dealparse/backend/src/config"
	"github.com/username/dealparse/backend/src/database"
	"github.com/username/dealparse/backend/src/logger"
	"github.com/username/dealparse/backend/src/model"
	"github.com/username/dealparse/backend/src/models"
	"github.com/username/dealparse/backend/src/security/validation"
	"github.com/username/dealparse/backend/src/services"
	"github.com/username/dealparse/backend/src/utils"
)

// Extraction modes the caller can signal. Structured is for templated
// term sheets (docx-style, flattened upstream); free text runs the
// statistical + regex path.
const (
	ModeStructured = "structured"
	ModeFreeText   = "freetext"
)

type UploadHandler struct {
	extractionService services.ExtractionService
	sessionService    services.SessionService
}

func NewUploadHandler(extractionService services.ExtractionService, sessionService services.SessionService) *UploadHandler {
	return &UploadHandler{
		extractionService: extractionService,
		sessionService:    sessionService,
	}
}

// HandleUpload accepts a multipart document upload, validates that it is
// decoded text, runs the extraction strategy the caller signalled and
// returns the result together with a session document ID.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		ctxLogger.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("failed to parse upload or file too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		ctxLogger.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		ctxLogger.Warn("Uploaded file too large", "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("file too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		ctxLogger.Warn("Invalid client-declared file type", "contentType", clientContentType, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	detectedContentType, err := validation.ValidateFileContentByMagicBytes(file)
	if err != nil {
		ctxLogger.Warn("Server-side file content validation failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctxLogger.Info("File content validated", "filename", fileHeader.Filename, "clientType", clientContentType, "detectedType", detectedContentType)

	raw, err := io.ReadAll(file)
	if err != nil {
		ctxLogger.Error("Failed to read uploaded file", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, "failed to read uploaded file", http.StatusBadRequest)
		return
	}

	text := decodeUploadText(raw)
	if strings.TrimSpace(text) == "" {
		// Malformed source document: reply with a JSON-shaped error
		// result rather than failing the request.
		utils.SendJSONResponse(w, map[string]string{"error": "document contains no extractable text"}, http.StatusOK)
		return
	}

	mode := resolveMode(r.FormValue("mode"), fileHeader.Filename)
	result, ok := h.runExtraction(r, mode, text)
	if !ok {
		utils.SendJSONError(w, fmt.Sprintf("unsupported extraction mode '%s'", mode), http.StatusBadRequest)
		return
	}

	documentID := h.sessionService.Put(result)
	persistExtractionRun(r, documentID, fileHeader.Filename, mode, result)

	utils.SendJSONResponse(w, map[string]any{
		"mode":        mode,
		"document_id": documentID,
		"result":      result,
	}, http.StatusOK)
}

func (h *UploadHandler) runExtraction(r *http.Request, mode, text string) (*models.ExtractionResult, bool) {
	switch mode {
	case ModeStructured:
		return h.extractionService.ExtractStructured(text), true
	case ModeFreeText:
		return h.extractionService.ExtractFreeText(r.Context(), text), true
	default:
		return nil, false
	}
}

// decodeUploadText turns raw upload bytes into clean UTF-8 text: invalid
// sequences dropped, markup stripped, unprintable characters removed.
func decodeUploadText(raw []byte) string {
	text := strings.ToValidUTF8(string(raw), "")
	text = validation.SanitizeText(text)
	return validation.StripUnprintable(text)
}

// resolveMode picks the extraction strategy: an explicit form value
// wins; otherwise docx-derived files are treated as templated and
// everything else as free text.
func resolveMode(formMode, filename string) string {
	if formMode != "" {
		return strings.ToLower(formMode)
	}
	if strings.EqualFold(filepath.Ext(filename), ".docx") {
		return ModeStructured
	}
	return ModeFreeText
}

// persistExtractionRun records the extraction in the audit store. Best
// effort: a storage failure is logged, never surfaced to the caller.
func persistExtractionRun(r *http.Request, documentID, filename, mode string, result *models.ExtractionResult) {
	if database.DB == nil {
		return
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to marshal extraction result for audit", "error", err)
		return
	}
	run := &model.ExtractionRun{
		DocumentID: documentID,
		Filename:   filename,
		Mode:       mode,
		Engine:     result.Engine,
		Confidence: result.ConfidenceScore,
		ResultJSON: string(resultJSON),
	}
	if err := model.InsertExtractionRun(database.DB, run); err != nil {
		logger.FromContext(r.Context()).Error("Failed to persist extraction run", "documentID", documentID, "error", err)
	}
}
