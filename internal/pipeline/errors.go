package pipeline

import "errors"

var (
	// ErrFormatUnrecognized: the column set matches neither schema.
	ErrFormatUnrecognized = errors.New("unable to detect file format, ensure the file has the required columns")
	// ErrMissingColumns: a schema was detected but required columns are absent.
	ErrMissingColumns = errors.New("missing required columns")
	// ErrEmptyInput: all rows were filtered out before generation.
	ErrEmptyInput = errors.New("no valid product rows found in the file")
)
