package app

import "fmt"

type CannotReadSchemaError struct {
	Path string
	Err  error
}

func (e *CannotReadSchemaError) Error() string {
	return fmt.Sprintf("cannot read schema %q: %v", e.Path, e.Err)
}

func (e *CannotReadSchemaError) Unwrap() error {
	return e.Err
}

type InvalidSchemaDocumentError struct {
	Path string
	Err  error
}

func (e *InvalidSchemaDocumentError) Error() string {
	return fmt.Sprintf("schema %q is not a JSON object: %v", e.Path, e.Err)
}

func (e *InvalidSchemaDocumentError) Unwrap() error {
	return e.Err
}

type ValidationFailedError struct {
	Failed int
	Total  int
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("%d of %d documents failed validation", e.Failed, e.Total)
}
