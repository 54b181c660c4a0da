package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/tracklab/hdfsum/internal/batch"
	"github.com/tracklab/hdfsum/internal/schema"
	"github.com/tracklab/hdfsum/internal/stats"
)

func fixtureResult() ([]schema.SensorKey, []batch.Row) {
	cols := []schema.SensorKey{
		{Device: "Tracker", Sensor: 0},
		{Device: "Tracker", Sensor: 1},
	}
	full := []*stats.Stats{
		{Average: [3]float64{1.5, 2, 0}, MaxDistance: 5},
		{Average: [3]float64{0, 0, 0}, MaxDistance: 0},
	}
	sparse := []*stats.Stats{
		{Average: [3]float64{-1, 0.25, 3}, MaxDistance: 2.5},
		nil,
	}
	rows := []batch.Row{
		{FileName: "a.hdf5", Cells: full},
		{FileName: "b.hdf5", Cells: sparse},
		{FileName: "c.hdf5", Failed: true, Cells: []*stats.Stats{nil, nil}},
	}
	return cols, rows
}

func TestWriteAverages(t *testing.T) {
	cols, rows := fixtureResult()
	path := filepath.Join(t.TempDir(), "average_positions.csv")
	if err := (Emitter{FloatPrecision: -1}).WriteAverages(path, cols, rows); err != nil {
		t.Fatalf("WriteAverages: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "FileName,Tracker_Sensor0_X,Tracker_Sensor0_Y,Tracker_Sensor0_Z,Tracker_Sensor1_X,Tracker_Sensor1_Y,Tracker_Sensor1_Z\n" +
		"a.hdf5,1.5,2,0,0,0,0\n" +
		"b.hdf5,-1,0.25,3,,,\n" +
		"c.hdf5,,,,,,\n"
	if string(b) != want {
		t.Fatalf("averages table:\n%s\nwant:\n%s", b, want)
	}
}

func TestWriteDistances(t *testing.T) {
	cols, rows := fixtureResult()
	path := filepath.Join(t.TempDir(), "max_distances.csv")
	if err := (Emitter{FloatPrecision: -1}).WriteDistances(path, cols, rows); err != nil {
		t.Fatalf("WriteDistances: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	// Zero is a computed value; only nil cells become blank.
	want := "FileName,Tracker_Sensor0_Dist,Tracker_Sensor1_Dist\n" +
		"a.hdf5,5,0\n" +
		"b.hdf5,2.5,\n" +
		"c.hdf5,,\n"
	if string(b) != want {
		t.Fatalf("distances table:\n%s\nwant:\n%s", b, want)
	}
}

func TestWriteFixedPrecision(t *testing.T) {
	cols := []schema.SensorKey{{Device: "D", Sensor: 0}}
	rows := []batch.Row{{
		FileName: "a.hdf5",
		Cells:    []*stats.Stats{{Average: [3]float64{1.0 / 3, 0, 2}, MaxDistance: 5}},
	}}
	path := filepath.Join(t.TempDir(), "avg.csv")
	if err := (Emitter{FloatPrecision: 3}).WriteAverages(path, cols, rows); err != nil {
		t.Fatalf("WriteAverages: %v", err)
	}
	b, _ := os.ReadFile(path)
	want := "FileName,D_Sensor0_X,D_Sensor0_Y,D_Sensor0_Z\na.hdf5,0.333,0.000,2.000\n"
	if string(b) != want {
		t.Fatalf("got:\n%s\nwant:\n%s", b, want)
	}
}

func TestRerunsAreByteIdentical(t *testing.T) {
	cols, rows := fixtureResult()
	dir := t.TempDir()
	path := filepath.Join(dir, "avg.csv")
	e := Emitter{FloatPrecision: -1}
	if err := e.WriteAverages(path, cols, rows); err != nil {
		t.Fatalf("first write: %v", err)
	}
	first, _ := os.ReadFile(path)
	if err := e.WriteAverages(path, cols, rows); err != nil {
		t.Fatalf("second write: %v", err)
	}
	second, _ := os.ReadFile(path)
	if string(first) != string(second) {
		t.Fatal("reruns over identical input differ")
	}
}

func TestManifest(t *testing.T) {
	_, rows := fixtureResult()
	res := &batch.Result{
		Columns:  []schema.SensorKey{{Device: "Tracker", Sensor: 0}, {Device: "Tracker", Sensor: 1}},
		Rows:     rows,
		Warnings: []string{"file c.hdf5: read c: boom"},
		Failed:   1,
	}
	m := NewManifest("/data/captures")
	m.Finish(res)
	dir := t.TempDir()
	if err := m.Write(dir); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, ManifestFileName))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var got Manifest
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.RunID == "" {
		t.Fatal("manifest missing run id")
	}
	if got.FileCount != 3 || got.FailedCount != 1 || got.SensorCount != 2 {
		t.Fatalf("counts = %+v", got)
	}
	if got.Files[2].Status != "failed" || got.Files[0].Status != "ok" {
		t.Fatalf("file statuses = %v", got.Files)
	}
}
