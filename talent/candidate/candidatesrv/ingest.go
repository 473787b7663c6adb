package candidatesrv

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talentwire/scout/internal/ai/profileparser"
	"github.com/talentwire/scout/internal/pdf"
	"github.com/talentwire/scout/pkg/errx"
	"github.com/talentwire/scout/pkg/kernel"
	"github.com/talentwire/scout/pkg/logx"
	"github.com/talentwire/scout/talent/candidate"
)

// ImportResume stores the uploaded resume, parses it into a profile and
// creates the candidate from it.
func (s *Service) ImportResume(ctx context.Context, fileName string, data []byte) (*candidate.CandidateResponse, error) {
	if s.parser == nil || s.storage == nil {
		return nil, candidate.ErrImportUnavailable()
	}
	if len(data) == 0 {
		return nil, candidate.ErrInvalidRequest().WithDetail("file", "empty upload")
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	switch ext {
	case "pdf", "jpg", "jpeg", "png":
	default:
		return nil, candidate.ErrUnsupportedFileType().
			WithDetail("file_name", fileName).
			WithDetail("supported_formats", []string{"pdf", "jpg", "jpeg", "png"})
	}

	key := s.storage.Join("resumes", uuid.NewString()+"."+ext)
	if err := s.storage.WriteFile(ctx, key, data); err != nil {
		return nil, errx.Wrap(err, "failed to store resume file", errx.TypeExternal)
	}

	logx.Infof("Resume stored: Key=%s, Size=%d", key, len(data))

	var pages [][]byte
	var err error
	if ext == "pdf" {
		pages, err = resumePagesFromPDF(data)
	} else {
		pages, err = resumePagesFromImage(data)
	}
	if err != nil {
		return nil, candidate.ErrRegistry.NewWithCause(candidate.CodeResumeParseFailed, err).
			WithDetail("file_name", fileName)
	}

	parsed, err := s.parser.ParseProfile(ctx, pages)
	if err != nil {
		return nil, candidate.ErrRegistry.NewWithCause(candidate.CodeResumeParseFailed, err).
			WithDetail("file_name", fileName)
	}

	newCandidate, err := s.candidateFromParsedProfile(ctx, parsed, key)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, newCandidate); err != nil {
		return nil, errx.Wrap(err, "failed to save imported candidate", errx.TypeInternal)
	}

	s.enqueueIndexJob(ctx, newCandidate.ID)

	logx.Infof("Resume imported: CandidateID=%s, Name=%s", newCandidate.ID, newCandidate.Name)

	resp := candidate.ToCandidateResponse(newCandidate)
	return &resp, nil
}

// ImportSnapshot seeds the pool from a JSON array of candidate records
// previously uploaded to the bucket.
func (s *Service) ImportSnapshot(ctx context.Context, req candidate.ImportSnapshotRequest) (*candidate.SnapshotImportResponse, error) {
	if s.storage == nil {
		return nil, candidate.ErrImportUnavailable()
	}

	data, err := s.storage.ReadFile(ctx, req.Key)
	if err != nil {
		return nil, errx.Wrap(err, "failed to read snapshot file", errx.TypeExternal)
	}

	var records []candidate.CreateCandidateRequest
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, candidate.ErrSnapshotInvalid().
			WithDetail("key", req.Key).
			WithDetail("parse_error", err.Error())
	}

	result := &candidate.SnapshotImportResponse{
		Total:  len(records),
		Errors: []string{},
	}

	for i, record := range records {
		if _, err := s.CreateCandidate(ctx, record); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("record %d (%s): %v", i, record.Email, err))
			continue
		}
		result.Imported++
	}

	logx.Infof("Snapshot imported: Key=%s, Imported=%d/%d", req.Key, result.Imported, result.Total)
	return result, nil
}

// resumePagesFromPDF renders the PDF pages to JPEG images
func resumePagesFromPDF(data []byte) ([][]byte, error) {
	pages, err := pdf.ConvertPDFToImages(data)
	if err != nil {
		return nil, fmt.Errorf("failed to convert PDF: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("PDF contains no pages")
	}
	return pages, nil
}

// resumePagesFromImage normalizes a single image resume to JPEG
func resumePagesFromImage(data []byte) ([][]byte, error) {
	format, err := pdf.DetectImageFormat(data)
	if err != nil {
		return nil, fmt.Errorf("invalid image format: %w", err)
	}

	if format != "jpeg" && format != "jpg" {
		data, err = pdf.ConvertImageToJPEG(data)
		if err != nil {
			return nil, fmt.Errorf("failed to convert image: %w", err)
		}
	}
	return [][]byte{data}, nil
}

// candidateFromParsedProfile maps parser output to a new domain entity.
// Name and email are the identity of a candidate; a resume the model
// could not read those from is rejected.
func (s *Service) candidateFromParsedProfile(ctx context.Context, parsed *profileparser.ParsedProfile, storageKey string) (*candidate.Candidate, error) {
	name := strings.TrimSpace(parsed.Name)
	email := kernel.Email(strings.ToLower(strings.TrimSpace(parsed.Email)))
	if name == "" || !email.IsValid() {
		return nil, candidate.ErrResumeParseFailed().
			WithDetail("reason", "resume is missing a readable name or email")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, candidate.ErrEmailAlreadyExists().
			WithDetail("email", email.String()).
			WithDetail("existing_id", existing.ID.String())
	}

	history := make([]candidate.JobHistoryEntry, 0, len(parsed.Experience))
	for _, exp := range parsed.Experience {
		history = append(history, candidate.JobHistoryEntry{
			Company:   exp.Company,
			Title:     exp.Title,
			StartDate: exp.StartDate,
			EndDate:   exp.EndDate,
		})
	}

	now := time.Now()
	c := &candidate.Candidate{
		ID:             kernel.NewCandidateID(uuid.NewString()),
		Name:           name,
		Email:          email,
		Phone:          kernel.Phone(parsed.Phone),
		Skills:         parsed.Skills,
		WorkPreference: candidate.WorkPreference(parsed.WorkPreference),
		Location:       parsed.Location,
		Bio:            parsed.Summary,
		JobHistory:     history,
		ResumeURL:      kernel.BucketURL(storageKey),
		Status:         candidate.CandidateStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	c.Normalize(now)

	return c, nil
}
