// Package voucher manages invoice drafts: extracting them from
// uploaded documents, keeping them alongside their source files in a
// local BoltDB, and serving them over HTTP until the user turns them
// into real vouchers on the books backend.
package voucher

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/bizbook-labs/ledgerscan/internal/invoice"
	"github.com/bizbook-labs/ledgerscan/internal/scanning"
)

// IDGenerator generates unique IDs for draft records
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultIDGenerator generates IDs using UnixNano timestamp
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service handles draft operations
type Service struct {
	db          DB
	transcriber scanning.Transcriber
	storage     Storage
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source
func NewService(db DB, transcriber scanning.Transcriber, storage Storage) *Service {
	return &Service{
		db:          db,
		transcriber: transcriber,
		storage:     storage,
		idGenerator: &defaultIDGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, transcriber scanning.Transcriber, storage Storage, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		transcriber: transcriber,
		storage:     storage,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// sanitizeFilename cleans up a filename by removing special characters
// and truncating length; phone cameras produce absurdly long names.
func sanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	reg := regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	base = reg.ReplaceAllString(base, "")

	reg = regexp.MustCompile(`\s+`)
	base = reg.ReplaceAllString(base, " ")

	base = strings.TrimSpace(base)

	maxLen := 50
	if len(base) > maxLen {
		base = base[:maxLen]
	}

	if base == "" {
		base = "invoice"
	}

	return base + ext
}

// ProcessDocument stores an uploaded document, transcribes it, runs
// invoice extraction over the text and persists the resulting draft.
func (s *Service) ProcessDocument(filename string, data []byte, contentType string) (*DraftRecord, error) {
	id := s.idGenerator.Generate()
	now := s.timeSource.Now()

	cleanFilename := sanitizeFilename(filename)

	savedPath, err := s.storage.Save(fmt.Sprintf("%s_%s", id, cleanFilename), data)
	if err != nil {
		return nil, fmt.Errorf("saving file: %w", err)
	}

	text, err := s.transcriber.Transcribe(data, contentType)
	if err != nil {
		slog.Error("Failed to transcribe document",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		// Clean up the saved file since transcription failed
		s.storage.Delete(savedPath)
		return nil, fmt.Errorf("transcribing document: %w", err)
	}

	record := &DraftRecord{
		ID:          id,
		Draft:       invoice.Extract(text),
		SourceText:  text,
		Filename:    savedPath,
		ContentType: contentType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.db.SaveDraft(record); err != nil {
		// Clean up file if database save fails
		s.storage.Delete(savedPath)
		return nil, fmt.Errorf("saving draft to database: %w", err)
	}

	return record, nil
}

// ExtractText runs invoice extraction over already-transcribed text
// (the speech-to-text path) without persisting anything.
func (s *Service) ExtractText(text string) invoice.Draft {
	return invoice.Extract(text)
}

// GetDraft retrieves a draft record by ID
func (s *Service) GetDraft(id string) (*DraftRecord, error) {
	record, err := s.db.GetDraft(id)
	if err != nil {
		return nil, fmt.Errorf("getting draft: %w", err)
	}
	return record, nil
}

// ListDrafts returns all draft records
func (s *Service) ListDrafts() ([]*DraftRecord, error) {
	records, err := s.db.ListDrafts()
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}
	return records, nil
}

// DeleteDraft removes a draft record and its source file
func (s *Service) DeleteDraft(id string) error {
	record, err := s.db.GetDraft(id)
	if err != nil {
		return fmt.Errorf("getting draft for deletion: %w", err)
	}

	if err := s.storage.Delete(record.Filename); err != nil {
		// Log error but continue with database deletion
		slog.Warn("Failed to delete file", "filename", record.Filename, "error", err)
	}

	if err := s.db.DeleteDraft(id); err != nil {
		return fmt.Errorf("deleting draft from database: %w", err)
	}
	return nil
}

// GetDraftFile retrieves the source document for a draft
func (s *Service) GetDraftFile(id string) ([]byte, string, error) {
	record, err := s.db.GetDraft(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting draft: %w", err)
	}

	data, err := s.storage.Get(record.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("getting draft file: %w", err)
	}

	return data, record.ContentType, nil
}
