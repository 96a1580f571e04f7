package runner

import "fmt"

type CannotReadDocumentError struct {
	Path string
}

func (e *CannotReadDocumentError) Error() string {
	return fmt.Sprintf("document %s could not be read", e.Path)
}

type InvalidDocumentError struct {
	Path string
}

func (e *InvalidDocumentError) Error() string {
	return fmt.Sprintf("document %s is not valid JSON", e.Path)
}

type SuiteDirMissingError struct {
	Path   string
	Expect Expectation
}

func (e *SuiteDirMissingError) Error() string {
	return fmt.Sprintf("%s directory missing: %s", e.Expect, e.Path)
}

type UnexpectedlyValidError struct {
	Path string
}

func (e *UnexpectedlyValidError) Error() string {
	return fmt.Sprintf("fail document %s validated against the schema", e.Path)
}
