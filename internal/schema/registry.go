package schema

import (
	"fmt"
	"sort"
)

// SensorKey identifies one position-sensing channel: a named device group in an
// input file plus the zero-based sensor index within that device.
type SensorKey struct {
	Device string
	Sensor int
}

// Label renders the base column label for this key, e.g. "Tracker_Sensor2".
// Component suffixes (_X/_Y/_Z/_Dist) are appended by the report emitter.
func (k SensorKey) Label() string {
	return fmt.Sprintf("%s_Sensor%d", k.Device, k.Sensor)
}

// Registry accumulates the union of sensor keys observed across a batch run.
// It only grows: keys are never removed, and registering a known key is a no-op.
// Devices are ordered by first registration; sensors within a device are ordered
// by ascending index regardless of the order they were discovered in.
type Registry struct {
	devices []string
	sensors map[string][]int
	seen    map[SensorKey]struct{}
}

// NewRegistry returns an empty registry. One registry spans one batch run; its
// key set is snapshotted with Keys once every input file has been scanned.
func NewRegistry() *Registry {
	return &Registry{
		sensors: make(map[string][]int),
		seen:    make(map[SensorKey]struct{}),
	}
}

// Register records a sensor key. Idempotent.
func (r *Registry) Register(key SensorKey) {
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	if _, ok := r.sensors[key.Device]; !ok {
		r.devices = append(r.devices, key.Device)
	}
	idxs := r.sensors[key.Device]
	pos := sort.SearchInts(idxs, key.Sensor)
	idxs = append(idxs, 0)
	copy(idxs[pos+1:], idxs[pos:])
	idxs[pos] = key.Sensor
	r.sensors[key.Device] = idxs
}

// Len reports the number of distinct sensor keys registered so far.
func (r *Registry) Len() int { return len(r.seen) }

// Keys returns the ordered key set: devices in first-seen order, sensors
// ascending within each device. The returned slice is a snapshot; later
// registrations do not mutate it.
func (r *Registry) Keys() []SensorKey {
	keys := make([]SensorKey, 0, len(r.seen))
	for _, dev := range r.devices {
		for _, s := range r.sensors[dev] {
			keys = append(keys, SensorKey{Device: dev, Sensor: s})
		}
	}
	return keys
}
