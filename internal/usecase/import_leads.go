package usecase

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/skylineestates/leaddesk/internal/entity"
)

// Resolution is the operator's decision for a preview that contains duplicates.
type Resolution string

const (
	ResolutionSkipDuplicates Resolution = "skip_duplicates"
	ResolutionImportAll      Resolution = "import_all"
	ResolutionCancel         Resolution = "cancel"
)

// ImportPreview is the outcome of the dry-run phase: every data row of the
// file lands in exactly one of the three buckets. Nothing has been persisted
// yet; an abandoned preview leaves no trace.
type ImportPreview struct {
	Headers    []string      `json:"headers"`
	Accepted   []entity.Lead `json:"accepted"`
	Duplicates []entity.Lead `json:"duplicates"`
	Skipped    []SkippedRow  `json:"skipped"`
}

type CommitFailure struct {
	Row   int    `json:"row"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

type CommitResult struct {
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Failures  []CommitFailure `json:"failures,omitempty"`
}

// ImportLeadsUseCase runs the spreadsheet import pipeline:
// parse -> map headers -> normalize rows -> classify against the current
// lead book -> (operator reconciliation) -> commit.
type ImportLeadsUseCase struct {
	Repo   entity.LeadRepositoryInterface
	Parser FileParser
	Mode   MatchMode

	// CommitWorkers bounds concurrent creates during commit; 0 means default.
	CommitWorkers int
}

const defaultCommitWorkers = 4

func NewImportLeadsUseCase(repo entity.LeadRepositoryInterface, parser FileParser) *ImportLeadsUseCase {
	return &ImportLeadsUseCase{Repo: repo, Parser: parser, Mode: MatchExact}
}

// Preview runs everything up to (but not including) the commit phase.
func (uc *ImportLeadsUseCase) Preview(ctx context.Context, filename string, data []byte) (*ImportPreview, error) {
	if err := checkFileGate(filename, int64(len(data))); err != nil {
		return nil, err
	}

	rows, err := uc.Parser.Rows(filename, data)
	if err != nil {
		return nil, &UnsupportedFileTypeError{Filename: filename, Size: int64(len(data)), Reason: err.Error()}
	}

	rows = dropEmptyRows(rows)
	if len(rows) < 2 {
		return nil, &EmptyFileError{}
	}

	headers := rows[0]
	hm, err := MapHeaders(headers)
	if err != nil {
		return nil, err
	}

	existing, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading lead snapshot: %w", err)
	}
	deduper := NewDeduper(existing, uc.Mode)

	preview := &ImportPreview{Headers: headers}
	for i, row := range rows[1:] {
		// 1-based position in the file, counting the header.
		rowNum := i + 2

		lead, skipped := NormalizeRow(row, hm, rowNum)
		if skipped != nil {
			preview.Skipped = append(preview.Skipped, *skipped)
			continue
		}
		if deduper.IsDuplicate(lead) {
			preview.Duplicates = append(preview.Duplicates, *lead)
		} else {
			preview.Accepted = append(preview.Accepted, *lead)
		}
	}

	if len(preview.Accepted) == 0 && len(preview.Duplicates) == 0 {
		return nil, &NoValidLeadsError{Headers: headers, Skipped: preview.Skipped}
	}

	return preview, nil
}

// Resolve applies the operator's duplicate decision to a preview and returns
// the final set to commit. Cancel and skip-with-nothing-accepted both yield
// an empty set.
func Resolve(preview *ImportPreview, resolution Resolution) []entity.Lead {
	switch resolution {
	case ResolutionImportAll:
		final := make([]entity.Lead, 0, len(preview.Accepted)+len(preview.Duplicates))
		final = append(final, preview.Accepted...)
		final = append(final, preview.Duplicates...)
		return final
	case ResolutionSkipDuplicates:
		return append([]entity.Lead(nil), preview.Accepted...)
	default:
		return nil
	}
}

// Commit persists the final set, a bounded number of creates in flight at a
// time. Per-row results are tracked so partial failure names the rows that
// did not make it; already-created leads are never rolled back.
func (uc *ImportLeadsUseCase) Commit(ctx context.Context, leads []entity.Lead) *CommitResult {
	workers := uc.CommitWorkers
	if workers <= 0 {
		workers = defaultCommitWorkers
	}

	errs := make([]error, len(leads))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i := range leads {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			lead := leads[i]
			lead.RowNumber = 0 // provenance stops at the import boundary
			errs[i] = uc.Repo.Create(ctx, &lead)
		}(i)
	}
	wg.Wait()

	result := &CommitResult{}
	for i, err := range errs {
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, CommitFailure{
				Row:   leads[i].RowNumber,
				Name:  leads[i].Name,
				Error: err.Error(),
			})
			continue
		}
		result.Succeeded++
	}

	if result.Failed > 0 {
		log.Printf("lead import commit: %d ok, %d failed", result.Succeeded, result.Failed)
	}
	return result
}

var importExtensions = map[string]bool{".csv": true, ".xlsx": true, ".xls": true}

func checkFileGate(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !importExtensions[ext] {
		return &UnsupportedFileTypeError{Filename: filename, Size: size, Reason: "extension must be .csv, .xlsx or .xls"}
	}
	if size == 0 {
		return &UnsupportedFileTypeError{Filename: filename, Size: size, Reason: "file is empty"}
	}
	if size > MaxImportFileSize {
		return &UnsupportedFileTypeError{Filename: filename, Size: size, Reason: "file exceeds the 5 MB limit"}
	}
	return nil
}

func dropEmptyRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out
}
