package export

import "fmt"

// IOError reports a failed export: unwritable destination, missing
// permissions, or a full disk.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("export to %s failed: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
