package usecase

import (
	"fmt"
	"strings"
)

// MaxImportFileSize is the upload ceiling for lead spreadsheets.
const MaxImportFileSize = 5 * 1024 * 1024

// UnsupportedFileTypeError covers the pre-read gates: wrong extension,
// empty upload, or a file over the size ceiling.
type UnsupportedFileTypeError struct {
	Filename string
	Size     int64
	Reason   string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file %q: %s", e.Filename, e.Reason)
}

// EmptyFileError means the file had no data rows under the header.
type EmptyFileError struct{}

func (e *EmptyFileError) Error() string {
	return "file needs a header row plus at least one data row"
}

// MissingRequiredColumnsError carries the headers we actually saw so the
// operator can tell why Name/Phone could not be found.
type MissingRequiredColumnsError struct {
	Headers []string
}

func (e *MissingRequiredColumnsError) Error() string {
	return fmt.Sprintf("no name or phone column found in headers: %s", strings.Join(e.Headers, ", "))
}

// NoValidLeadsError means every data row failed the admission gate.
type NoValidLeadsError struct {
	Headers []string
	Skipped []SkippedRow
}

func (e *NoValidLeadsError) Error() string {
	return fmt.Sprintf("no valid leads found (%d rows skipped)", len(e.Skipped))
}

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
