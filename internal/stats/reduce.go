// Package stats reduces one device's raw position array to per-sensor
// summary statistics.
package stats

import (
	"fmt"
	"math"

	"github.com/tracklab/hdfsum/internal/hdf"
	"github.com/tracklab/hdfsum/internal/schema"
)

// Stats summarizes one sensor within one file: component-wise average position
// and the maximum pairwise Euclidean distance between any two of its samples.
type Stats struct {
	Average     [3]float64
	MaxDistance float64
}

// MalformedShapeError reports a position array whose shape is not
// [samples, sensors, 3]. Scoped to one device of one file.
type MalformedShapeError struct {
	Device string
	Dims   []int
}

func (e *MalformedShapeError) Error() string {
	return fmt.Sprintf("device %s: position array has shape %v, want [samples, sensors, 3]", e.Device, e.Dims)
}

// Reduce computes per-sensor statistics for one device group. Sensors with
// zero samples are omitted from the result, as if the sensor were not present.
// The pairwise distance scan is O(samples²); capture lengths are assumed small
// enough that this is acceptable.
func Reduce(device string, arr hdf.Array) (map[schema.SensorKey]Stats, error) {
	if len(arr.Dims) != 3 || arr.Dims[2] != 3 {
		return nil, &MalformedShapeError{Device: device, Dims: arr.Dims}
	}
	samples, sensors := arr.Dims[0], arr.Dims[1]
	out := make(map[schema.SensorKey]Stats, sensors)
	if samples == 0 {
		return out, nil
	}

	for s := 0; s < sensors; s++ {
		var sum [3]float64
		for i := 0; i < samples; i++ {
			base := (i*sensors + s) * 3
			sum[0] += arr.Data[base]
			sum[1] += arr.Data[base+1]
			sum[2] += arr.Data[base+2]
		}
		st := Stats{
			Average: [3]float64{
				sum[0] / float64(samples),
				sum[1] / float64(samples),
				sum[2] / float64(samples),
			},
			MaxDistance: maxPairwiseDistance(arr.Data, samples, sensors, s),
		}
		out[schema.SensorKey{Device: device, Sensor: s}] = st
	}
	return out, nil
}

// maxPairwiseDistance scans every unordered sample pair (i, j), i < j, for one
// sensor and returns the largest Euclidean distance. Zero or one sample yields 0.
func maxPairwiseDistance(data []float64, samples, sensors, sensor int) float64 {
	var maxSq float64
	for i := 0; i < samples; i++ {
		bi := (i*sensors + sensor) * 3
		for j := i + 1; j < samples; j++ {
			bj := (j*sensors + sensor) * 3
			dx := data[bi] - data[bj]
			dy := data[bi+1] - data[bj+1]
			dz := data[bi+2] - data[bj+2]
			if sq := dx*dx + dy*dy + dz*dz; sq > maxSq {
				maxSq = sq
			}
		}
	}
	return math.Sqrt(maxSq)
}
