package records

import (
	"errors"
	"fmt"
)

// Sentinel errors for record loading
var (
	// ErrUnsupportedFormat is returned when a record file has an unknown extension
	ErrUnsupportedFormat = errors.New("unsupported record format")

	// ErrInvalidRecords is returned when a file does not hold a list of records
	ErrInvalidRecords = errors.New("invalid records")

	// ErrSourceRequired is returned when no record path is configured
	ErrSourceRequired = errors.New("record source path required")
)

// FormatError reports a record file whose extension no decoder handles
type FormatError struct {
	Path string
	Ext  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported record format '%s' for %s", e.Ext, e.Path)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// InvalidRecordsError reports content that cannot be turned into records
type InvalidRecordsError struct {
	Path   string
	Reason string
}

func (e *InvalidRecordsError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid records in %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("invalid records: %s", e.Reason)
}

func (e *InvalidRecordsError) Is(target error) bool {
	return target == ErrInvalidRecords
}
