package injector

import (
	"sort"

	"github.com/google/uuid"
)

// InjectionRecord is the ground truth for one anomaly committed to a signal.
type InjectionRecord struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Index     int       `json:"index" yaml:"index"`                         // first sample of the anomaly
	Duration  int       `json:"duration" yaml:"duration"`                   // number of samples
	Amplitude float64   `json:"amplitude" yaml:"amplitude"`                 // drawn peak amplitude
	Frequency float64   `json:"anomaly_frequency" yaml:"anomaly_frequency"` // drawn frequency in Hz
	NumCycles float64   `json:"num_cycles" yaml:"num_cycles"`               // drawn number of cycles
}

// End returns the index one past the last sample of the anomaly.
func (r InjectionRecord) End() int {
	return r.Index + r.Duration
}

// Contains reports whether sample i lies within the anomaly.
func (r InjectionRecord) Contains(i int) bool {
	return i >= r.Index && i < r.End()
}

// InjectionLog is the ordered list of anomalies committed by one call, by increasing index.
type InjectionLog []InjectionRecord

// Labels returns a mask of length n that is true for every sample covered by an anomaly.
// Records reaching past n are clipped.
func (l InjectionLog) Labels(n int) []bool {
	labels := make([]bool, n)
	for _, r := range l {
		for i := r.Index; i < r.End() && i < n; i++ {
			labels[i] = true
		}
	}
	return labels
}

// Find returns the record covering sample i, if any.
func (l InjectionLog) Find(i int) (InjectionRecord, bool) {
	k := sort.Search(len(l), func(k int) bool { return l[k].End() > i })
	if k < len(l) && l[k].Contains(i) {
		return l[k], true
	}
	return InjectionRecord{}, false
}

// Overlaps reports whether any two records cover a common sample.
func (l InjectionLog) Overlaps() bool {
	sorted := make(InjectionLog, len(l))
	copy(sorted, l)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Index < sorted[b].Index })
	for k := 1; k < len(sorted); k++ {
		if sorted[k].Index < sorted[k-1].End() {
			return true
		}
	}
	return false
}

// Covered returns the total number of samples covered by anomalies.
func (l InjectionLog) Covered() int {
	total := 0
	for _, r := range l {
		total += r.Duration
	}
	return total
}
