// Package hdf reads hierarchical data files into named device groups. The
// batch aggregator depends only on the Reader interface, so tests (and any
// future container format) can supply their own implementation.
package hdf

import "fmt"

// Array is a dense numeric array in row-major order. For position data the
// expected dims are [samples, sensors, 3].
type Array struct {
	Data []float64
	Dims []int
}

// Samples returns the leading dimension, or 0 for an empty array.
func (a Array) Samples() int {
	if len(a.Dims) == 0 {
		return 0
	}
	return a.Dims[0]
}

// Group is one named device group and its Position array.
type Group struct {
	Name     string
	Position Array
}

// Reader yields the device groups of a hierarchical data file. Implementations
// must open and release all file handles within ReadFile, even when reading
// fails partway.
type Reader interface {
	ReadFile(path string) ([]Group, error)
}

// FileReadError reports a file that could not be opened or interpreted as the
// expected hierarchical structure. It is scoped to one file: the aggregator
// records it and continues with the rest of the batch.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }
