// Package report renders batch results into the two output tables and the
// optional run manifest.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/tracklab/hdfsum/internal/batch"
	"github.com/tracklab/hdfsum/internal/schema"
	"github.com/tracklab/hdfsum/internal/utils"
)

// Emitter writes result tables as comma-separated UTF-8 files.
type Emitter struct {
	// FloatPrecision is the number of decimals per cell; -1 selects the
	// shortest representation that round-trips, which keeps reruns over
	// unchanged input byte-identical.
	FloatPrecision int
}

// WriteAverages writes the average-position table: a FileName column followed
// by X/Y/Z columns per sensor key. Blank cells mark sensors absent from a row.
func (e Emitter) WriteAverages(path string, cols []schema.SensorKey, rows []batch.Row) error {
	header := make([]string, 0, 1+3*len(cols))
	header = append(header, "FileName")
	for _, key := range cols {
		header = append(header, key.Label()+"_X", key.Label()+"_Y", key.Label()+"_Z")
	}

	records := [][]string{header}
	for _, row := range rows {
		rec := make([]string, 0, len(header))
		rec = append(rec, row.FileName)
		for _, cell := range row.Cells {
			if cell == nil {
				rec = append(rec, "", "", "")
				continue
			}
			for _, v := range cell.Average {
				rec = append(rec, e.formatFloat(v))
			}
		}
		records = append(records, rec)
	}
	return writeCSV(path, records)
}

// WriteDistances writes the max-distance table: a FileName column followed by
// one Dist column per sensor key, in the same key order as the averages table.
func (e Emitter) WriteDistances(path string, cols []schema.SensorKey, rows []batch.Row) error {
	header := make([]string, 0, 1+len(cols))
	header = append(header, "FileName")
	for _, key := range cols {
		header = append(header, key.Label()+"_Dist")
	}

	records := [][]string{header}
	for _, row := range rows {
		rec := make([]string, 0, len(header))
		rec = append(rec, row.FileName)
		for _, cell := range row.Cells {
			if cell == nil {
				rec = append(rec, "")
				continue
			}
			rec = append(rec, e.formatFloat(cell.MaxDistance))
		}
		records = append(records, rec)
	}
	return writeCSV(path, records)
}

func (e Emitter) formatFloat(v float64) string {
	if e.FloatPrecision < 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', e.FloatPrecision, 64)
}

// writeCSV renders records in memory and writes them atomically, so a partially
// written table never replaces a previous good one.
func writeCSV(path string, records [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}
