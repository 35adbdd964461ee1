package xlsx

import "fmt"

// StorageError reports an I/O or serialization failure against a
// workbook file. Callers match it with errors.As and decide whether to
// retry, abort, or degrade; the backend never retries on its own.
type StorageError struct {
	Op   string // open, save, rename, mkdir
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// storageError wraps err as a *StorageError for the given operation.
func storageError(op, path string, err error) error {
	return &StorageError{Op: op, Path: path, Err: err}
}
