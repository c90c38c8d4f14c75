package loader

import "fmt"

// SourceNotFoundError reports a path that does not exist or cannot be opened.
// Load fails fast on it before parsing anything.
type SourceNotFoundError struct {
	Path string
	Err  error
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("survey file not found: %s", e.Path)
}

func (e *SourceNotFoundError) Unwrap() error { return e.Err }

// UnsupportedFormatError reports a file extension no reader handles.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported survey format %q: %s", e.Ext, e.Path)
}
