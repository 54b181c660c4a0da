// Package batch drives a summarization run: it scans every input file,
// reduces each device group to per-sensor statistics, grows the schema
// registry with the keys it encounters, and finally projects every file's
// sparse results into dense rows aligned to the frozen column order.
package batch

import (
	"fmt"

	"github.com/tracklab/hdfsum/internal/hdf"
	"github.com/tracklab/hdfsum/internal/schema"
	"github.com/tracklab/hdfsum/internal/stats"
)

// SetupError reports an unrecoverable pre-run failure, such as a missing input
// folder or an output folder that cannot be created. Unlike file-level
// failures it aborts the run before any output is written.
type SetupError struct {
	Op   string
	Path string
	Err  error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

// Row is one output row: the file name plus one cell per schema column. A nil
// cell means the file had no data for that column's sensor; the emitter renders
// it blank. A computed zero is a valid value and is never rendered blank.
type Row struct {
	FileName string
	Failed   bool
	Cells    []*stats.Stats
}

// Result is the outcome of one batch run. Columns is the frozen ordered key
// set; Rows follow file-processing order, one row per input file regardless of
// failures. Warnings collects per-file and per-device problems for the caller
// to surface.
type Result struct {
	Columns  []schema.SensorKey
	Rows     []Row
	Warnings []string
	Failed   int
}

// Aggregator processes a batch of files through an hdf.Reader.
type Aggregator struct {
	reader hdf.Reader

	// Progress, when set, is called before each file is read.
	Progress func(index, total int, name string)
}

// New returns an Aggregator reading files with the given reader.
func New(reader hdf.Reader) *Aggregator {
	return &Aggregator{reader: reader}
}

// Process runs the batch over the given files. names are the row labels, paths
// the corresponding locations on disk; both follow processing order. Files
// that cannot be read, and devices with malformed position arrays, are
// recorded as warnings and leave their cells blank; they never abort the run.
func (a *Aggregator) Process(names, paths []string) *Result {
	reg := schema.NewRegistry()
	sparse := make([]map[schema.SensorKey]stats.Stats, len(names))
	failed := make([]bool, len(names))
	var warnings []string

	for i, path := range paths {
		if a.Progress != nil {
			a.Progress(i, len(paths), names[i])
		}
		perFile, warns, ok := a.scanFile(names[i], path, reg)
		sparse[i] = perFile
		failed[i] = !ok
		warnings = append(warnings, warns...)
	}

	// The registry is frozen here: Keys() is the column order every row is
	// projected against.
	res := &Result{Columns: reg.Keys(), Warnings: warnings}
	res.Rows = make([]Row, len(names))
	for i, name := range names {
		row := Row{FileName: name, Failed: failed[i]}
		row.Cells = project(sparse[i], res.Columns)
		res.Rows[i] = row
		if failed[i] {
			res.Failed++
		}
	}
	return res
}

// scanFile reduces every device group of one file, registering keys as they
// appear. ok is false when the file itself could not be read.
func (a *Aggregator) scanFile(name, path string, reg *schema.Registry) (map[schema.SensorKey]stats.Stats, []string, bool) {
	groups, err := a.reader.ReadFile(path)
	if err != nil {
		return nil, []string{fmt.Sprintf("file %s: %v", name, err)}, false
	}
	perFile := make(map[schema.SensorKey]stats.Stats)
	var warns []string
	for _, g := range groups {
		reduced, err := stats.Reduce(g.Name, g.Position)
		if err != nil {
			warns = append(warns, fmt.Sprintf("file %s: %v", name, err))
			continue
		}
		for key, st := range reduced {
			perFile[key] = st
			reg.Register(key)
		}
	}
	return perFile, warns, true
}

// project densifies one file's sparse stats against the frozen column order.
func project(perFile map[schema.SensorKey]stats.Stats, cols []schema.SensorKey) []*stats.Stats {
	cells := make([]*stats.Stats, len(cols))
	for i, key := range cols {
		if st, ok := perFile[key]; ok {
			c := st
			cells[i] = &c
		}
	}
	return cells
}
