package encoder

import "fmt"

// FileAccessError reports a failed read of the input or write of the output.
type FileAccessError struct {
	// Op is "read" or "write".
	Op   string
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}
