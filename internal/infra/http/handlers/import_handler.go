package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/skylineestates/leaddesk/internal/entity"
	"github.com/skylineestates/leaddesk/internal/infra/http/middleware"
	"github.com/skylineestates/leaddesk/internal/usecase"
)

type ImportHandler struct {
	importUC *usecase.ImportLeadsUseCase
}

func NewImportHandler(importUC *usecase.ImportLeadsUseCase) *ImportHandler {
	return &ImportHandler{importUC: importUC}
}

// ImportPreviewResponse tells the client whether reconciliation is needed.
// When NeedsResolution is false the operator can commit the accepted set
// immediately.
type ImportPreviewResponse struct {
	*usecase.ImportPreview
	NeedsResolution bool `json:"needs_resolution"`
}

// HandlePreview takes the multipart upload, runs the pipeline up to
// classification, and returns the three buckets. No side effects: an
// abandoned preview persists nothing.
func (h *ImportHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(usecase.MaxImportFileSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, usecase.MaxImportFileSize+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read upload")
		return
	}

	preview, err := h.importUC.Preview(r.Context(), header.Filename, data)
	if err != nil {
		h.writeImportError(w, err)
		return
	}

	middleware.RecordImportRows(len(preview.Accepted), len(preview.Duplicates), len(preview.Skipped))

	writeJSON(w, http.StatusOK, ImportPreviewResponse{
		ImportPreview:   preview,
		NeedsResolution: len(preview.Duplicates) > 0,
	})
}

// ImportCommitRequest carries the operator's resolution together with the
// previewed buckets. The server holds no state between preview and commit,
// so the rows travel back with the decision.
type ImportCommitRequest struct {
	Resolution usecase.Resolution `json:"resolution"`
	Accepted   []entity.Lead      `json:"accepted"`
	Duplicates []entity.Lead      `json:"duplicates"`
}

type ImportCommitResponse struct {
	*usecase.CommitResult
	Cancelled bool `json:"cancelled,omitempty"`
}

func (h *ImportHandler) HandleCommit(w http.ResponseWriter, r *http.Request) {
	var req ImportCommitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	switch req.Resolution {
	case usecase.ResolutionSkipDuplicates, usecase.ResolutionImportAll, usecase.ResolutionCancel:
	case "":
		// No duplicates previewed; commit the accepted set as-is.
		req.Resolution = usecase.ResolutionSkipDuplicates
	default:
		writeError(w, http.StatusBadRequest, "Unknown resolution")
		return
	}

	if req.Resolution == usecase.ResolutionCancel {
		writeJSON(w, http.StatusOK, ImportCommitResponse{
			CommitResult: &usecase.CommitResult{},
			Cancelled:    true,
		})
		return
	}

	final := usecase.Resolve(&usecase.ImportPreview{
		Accepted:   req.Accepted,
		Duplicates: req.Duplicates,
	}, req.Resolution)

	if len(final) == 0 {
		writeError(w, http.StatusBadRequest, "Nothing to import")
		return
	}

	result := h.importUC.Commit(r.Context(), final)
	middleware.RecordImportCommit(result.Succeeded, result.Failed)

	writeJSON(w, http.StatusOK, ImportCommitResponse{CommitResult: result})
}

// writeImportError maps the pipeline taxonomy onto diagnostic 400 payloads.
// Everything the operator needs to fix the file rides along: headers seen,
// per-row skip reasons, counts.
func (h *ImportHandler) writeImportError(w http.ResponseWriter, err error) {
	var unsupported *usecase.UnsupportedFileTypeError
	var empty *usecase.EmptyFileError
	var missing *usecase.MissingRequiredColumnsError
	var noValid *usecase.NoValidLeadsError

	switch {
	case errors.As(err, &unsupported):
		writeError(w, http.StatusBadRequest, unsupported.Error())
	case errors.As(err, &empty):
		writeError(w, http.StatusBadRequest, empty.Error())
	case errors.As(err, &missing):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "missing required columns",
			Details: map[string]any{"headers": missing.Headers},
		})
	case errors.As(err, &noValid):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "no valid leads found",
			Details: map[string]any{
				"headers":       noValid.Headers,
				"skipped":       noValid.Skipped,
				"skipped_count": len(noValid.Skipped),
			},
		})
	default:
		writeError(w, http.StatusInternalServerError, "Import failed")
	}
}
