package errors

import (
	stderrors "errors"
)

// Sentinel errors for the report pipeline. Callers match them with errors.Is;
// most of them describe a condition the batch run treats as "skip this input"
// rather than a fatal failure.
var (
	// ErrInputDirMissing aborts a run: there is nothing to process.
	ErrInputDirMissing = stderrors.New("input directory not found")

	// ErrNoHeader means no "S. No.,Student Name,EXAM" row was found.
	ErrNoHeader = stderrors.New("header row not found")

	// ErrNoStudents means a header was found but no student block followed.
	ErrNoStudents = stderrors.New("no students found")

	ErrUnsupportedFormat = stderrors.New("unsupported report format")
	ErrUnsupportedInput  = stderrors.New("unsupported input file type")
	ErrInvalidSheetURL   = stderrors.New("invalid Google Sheet URL")
)

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// IsSkippable reports whether err describes an input that should be skipped
// without counting as a failure.
func IsSkippable(err error) bool {
	return Is(err, ErrNoHeader) || Is(err, ErrNoStudents)
}
