package voucher

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/bizbook-labs/ledgerscan/internal/renewal"
)

// corsError writes an error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	http.Error(w, message, code)
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// jsonError writes a JSON-shaped error body for form-facing endpoints
func jsonError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// handleUploadDocument accepts a document upload, transcribes it and
// returns the persisted draft
func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 50MB to handle high-resolution phone photos)
	maxFormSize := int64(50 << 20) // 50MB
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		errorMsg := "Error parsing form"
		if err.Error() == "http: request body too large" {
			errorMsg = "File is too large. Maximum size is 50MB. Please compress or resize your image."
		}
		jsonError(w, errorMsg, http.StatusBadRequest)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		errorMsg := "No file provided"
		if err.Error() == "http: no such file" {
			errorMsg = "No file was selected. Please choose a file to upload."
		}
		jsonError(w, errorMsg, http.StatusBadRequest)
		return
	}
	defer f.Close()

	if header.Size > maxFormSize {
		jsonError(w, "File is too large. Maximum size is 50MB. Please compress or resize your image.", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		jsonError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = contentTypeFromExt(header.Filename)
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))

	record, err := s.service.ProcessDocument(header.Filename, data, contentType)
	if err != nil {
		slog.Error("Error processing document", "filename", header.Filename, "error", err)
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(record); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// contentTypeFromExt maps common upload extensions to MIME types when
// the client didn't set one
func contentTypeFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "application/octet-stream"
	}
}

// handleExtractText runs extraction over raw text (the speech or
// pre-transcribed path) without persisting a draft
func (s *Server) handleExtractText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		corsError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	draft := s.service.ExtractText(req.Text)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(draft); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleListDrafts returns a list of all drafts
func (s *Server) handleListDrafts(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.ListDrafts()
	if err != nil {
		slog.Error("Error listing drafts", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// Ensure we always return an array, not nil
	if records == nil {
		records = []*DraftRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(records); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleGetDraft returns a single draft
func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Draft ID required", http.StatusBadRequest)
		return
	}
	record, err := s.service.GetDraft(id)
	if err != nil {
		corsError(w, "Draft not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(record); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleGetDraftFile returns the source document for a draft
func (s *Server) handleGetDraftFile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Draft ID required", http.StatusBadRequest)
		return
	}
	data, contentType, err := s.service.GetDraftFile(id)
	if err != nil {
		corsError(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

// handleDeleteDraft deletes a draft
func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Draft ID required", http.StatusBadRequest)
		return
	}
	if err := s.service.DeleteDraft(id); err != nil {
		corsError(w, "Error deleting draft", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleGetNotification returns the pending renewal notification
func (s *Server) handleGetNotification(w http.ResponseWriter, r *http.Request) {
	n, err := renewal.PendingNotification(s.settings)
	if err != nil {
		slog.Error("Error reading pending notification", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if n == nil {
		corsError(w, "No pending notification", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(n); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleUpgradeNotification clears the pending notification as part of
// the upgrade flow; plan selection itself happens client-side
func (s *Server) handleUpgradeNotification(w http.ResponseWriter, r *http.Request) {
	if err := renewal.ClearPending(s.settings); err != nil {
		slog.Error("Error clearing notification", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDismissNotification hides the notification until the
// suppression window next allows it to be raised again
func (s *Server) handleDismissNotification(w http.ResponseWriter, r *http.Request) {
	if err := renewal.ClearPending(s.settings); err != nil {
		slog.Error("Error dismissing notification", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
