package errors

import (
	"fmt"
)

// Stage identifies the pipeline step an error came from
type Stage string

const (
	StageDiscover Stage = "DISCOVER"
	StageRead     Stage = "READ"
	StageParse    Stage = "PARSE"
	StageRender   Stage = "RENDER"
	StageFetch    Stage = "FETCH"
	StageConfig   Stage = "CONFIG"
)

// FileError attaches the input source and pipeline stage to an error
type FileError struct {
	Source string
	Stage  Stage
	Cause  error
}

// Error implements the error interface
func (e *FileError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("[%s] %v", e.Stage, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Stage, e.Source, e.Cause)
}

// Unwrap allows errors.Is and errors.As to see the cause
func (e *FileError) Unwrap() error {
	return e.Cause
}

// NewFileError creates a FileError for source at stage
func NewFileError(source string, stage Stage, cause error) *FileError {
	return &FileError{
		Source: source,
		Stage:  stage,
		Cause:  cause,
	}
}

// NewReadError creates a read-stage error
func NewReadError(source string, cause error) *FileError {
	return NewFileError(source, StageRead, cause)
}

// NewParseError creates a parse-stage error
func NewParseError(source string, cause error) *FileError {
	return NewFileError(source, StageParse, cause)
}

// NewRenderError creates a render-stage error
func NewRenderError(source string, cause error) *FileError {
	return NewFileError(source, StageRender, cause)
}

// StageOf returns the stage recorded in err's chain, or "" when none
func StageOf(err error) Stage {
	var fe *FileError
	if As(err, &fe) {
		return fe.Stage
	}
	return ""
}
