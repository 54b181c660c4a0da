package hdf

import (
	"fmt"

	"gonum.org/v1/hdf5"
)

// positionDataset is the dataset name each device group must expose.
const positionDataset = "Position"

// HDF5Reader reads .hdf5 containers via the HDF5 C library bindings.
type HDF5Reader struct{}

// ReadFile opens an HDF5 file and extracts the Position array of every
// top-level group. Top-level objects that are not groups, and groups without a
// Position dataset, are skipped. Any read failure is returned as a
// *FileReadError; all handles are released before returning.
func (HDF5Reader) ReadFile(path string) ([]Group, error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, &FileReadError{Path: path, Err: fmt.Errorf("open: %w", err)}
	}
	defer f.Close()

	n, err := f.NumObjects()
	if err != nil {
		return nil, &FileReadError{Path: path, Err: fmt.Errorf("list objects: %w", err)}
	}

	var groups []Group
	for i := uint(0); i < n; i++ {
		name, err := f.ObjectNameByIndex(i)
		if err != nil {
			return nil, &FileReadError{Path: path, Err: fmt.Errorf("object name %d: %w", i, err)}
		}
		arr, ok, err := readGroupPosition(f, name)
		if err != nil {
			return nil, &FileReadError{Path: path, Err: fmt.Errorf("group %s: %w", name, err)}
		}
		if !ok {
			continue
		}
		groups = append(groups, Group{Name: name, Position: arr})
	}
	return groups, nil
}

// readGroupPosition extracts the Position dataset of one top-level object.
// ok is false when the object is not a group or has no Position dataset.
func readGroupPosition(f *hdf5.File, name string) (arr Array, ok bool, err error) {
	g, err := f.OpenGroup(name)
	if err != nil {
		// Non-group top-level object (e.g. a stray dataset).
		return Array{}, false, nil
	}
	defer g.Close()

	ds, err := g.OpenDataset(positionDataset)
	if err != nil {
		return Array{}, false, nil
	}
	defer ds.Close()

	space := ds.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return Array{}, false, fmt.Errorf("dataset extent: %w", err)
	}

	size := 1
	arr.Dims = make([]int, len(dims))
	for i, d := range dims {
		arr.Dims[i] = int(d)
		size *= int(d)
	}
	arr.Data = make([]float64, size)
	if size > 0 {
		if err := ds.Read(&arr.Data); err != nil {
			return Array{}, false, fmt.Errorf("dataset read: %w", err)
		}
	}
	return arr, true, nil
}
