package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cfgpkg "github.com/tracklab/hdfsum/internal/config"
	"github.com/tracklab/hdfsum/internal/hdf"
	"github.com/tracklab/hdfsum/internal/report"
)

// stubReader maps file base names to canned groups or errors.
type stubReader struct {
	groups map[string][]hdf.Group
	errs   map[string]error
}

func (s stubReader) ReadFile(path string) ([]hdf.Group, error) {
	base := filepath.Base(path)
	if err, ok := s.errs[base]; ok {
		return nil, err
	}
	return s.groups[base], nil
}

func testConfig() *cfgpkg.Global {
	return &cfgpkg.Global{
		InputExtensions:  []string{".hdf5", ".h5"},
		FloatPrecision:   -1,
		AverageFileName:  "average_positions.csv",
		DistanceFileName: "max_distances.csv",
		WriteManifest:    true,
	}
}

func runProcess(t *testing.T, r hdf.Reader, args ...string) error {
	t.Helper()
	prevReader, prevCfg, prevQuiet := fileReader, cfg, quiet
	fileReader, cfg, quiet = r, testConfig(), true
	t.Cleanup(func() {
		fileReader, cfg, quiet = prevReader, prevCfg, prevQuiet
	})
	rootCmd.SetArgs(append([]string{"process"}, args...))
	defer rootCmd.SetArgs(nil)
	return rootCmd.Execute()
}

func TestProcessCommandWritesTables(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "reports")
	for _, name := range []string{"a.hdf5", "bad.hdf5", "skip.txt"} {
		if err := os.WriteFile(filepath.Join(in, name), nil, 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	r := stubReader{
		groups: map[string][]hdf.Group{
			"a.hdf5": {{
				Name: "Tracker",
				Position: hdf.Array{
					Dims: []int{2, 1, 3},
					Data: []float64{0, 0, 0, 3, 4, 0},
				},
			}},
		},
		errs: map[string]error{
			"bad.hdf5": &hdf.FileReadError{Path: "bad.hdf5", Err: errors.New("not an hdf5 file")},
		},
	}
	if err := runProcess(t, r, in, out); err != nil {
		t.Fatalf("process: %v", err)
	}

	avg, err := os.ReadFile(filepath.Join(out, "average_positions.csv"))
	if err != nil {
		t.Fatalf("averages table missing: %v", err)
	}
	wantAvg := "FileName,Tracker_Sensor0_X,Tracker_Sensor0_Y,Tracker_Sensor0_Z\n" +
		"a.hdf5,1.5,2,0\n" +
		"bad.hdf5,,,\n"
	if string(avg) != wantAvg {
		t.Fatalf("averages table:\n%s\nwant:\n%s", avg, wantAvg)
	}

	dist, err := os.ReadFile(filepath.Join(out, "max_distances.csv"))
	if err != nil {
		t.Fatalf("distances table missing: %v", err)
	}
	wantDist := "FileName,Tracker_Sensor0_Dist\na.hdf5,5\nbad.hdf5,\n"
	if string(dist) != wantDist {
		t.Fatalf("distances table:\n%s\nwant:\n%s", dist, wantDist)
	}

	if _, err := os.Stat(filepath.Join(out, report.ManifestFileName)); err != nil {
		t.Fatalf("manifest missing: %v", err)
	}
}

func TestProcessCommandEmptyFolder(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "reports")
	if err := runProcess(t, stubReader{}, in, out); err != nil {
		t.Fatalf("process over empty folder: %v", err)
	}
	avg, err := os.ReadFile(filepath.Join(out, "average_positions.csv"))
	if err != nil {
		t.Fatalf("averages table missing: %v", err)
	}
	if string(avg) != "FileName\n" {
		t.Fatalf("averages table = %q, want header only", avg)
	}
}

func TestProcessCommandMissingInputFolder(t *testing.T) {
	err := runProcess(t, stubReader{}, filepath.Join(t.TempDir(), "nope"), t.TempDir())
	if err == nil {
		t.Fatal("expected setup error for missing input folder")
	}
	if !strings.Contains(err.Error(), "input folder") {
		t.Fatalf("err = %v", err)
	}
}
