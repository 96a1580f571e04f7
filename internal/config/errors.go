package config

import "fmt"

type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("config file %s could not be read", e.Path)
}

type InvalidConfigError struct {
	Path    string
	Wrapped error
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("%s is not valid YAML: %s", e.Path, e.Wrapped)
}

type InvalidFormatPatternError struct {
	Name    string
	Pattern string
}

func (e *InvalidFormatPatternError) Error() string {
	return fmt.Sprintf("format %q has an invalid pattern %q - must be a valid regular expression", e.Name, e.Pattern)
}

type InvalidDepthError struct {
	Depth int
}

func (e *InvalidDepthError) Error() string {
	return fmt.Sprintf("maxReferenceDepth %d is invalid - must be a positive integer", e.Depth)
}
