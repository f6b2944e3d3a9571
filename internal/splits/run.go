// Package splits holds the run aggregate produced by parsing a legacy
// split-timer save file, together with its owned entities.
package splits

import "slices"

// Attempt is one historical run through all segments.
type Attempt struct {
	Index     int32
	Time      Time
	PauseTime *TimeSpan
	Started   *AtomicDateTime
	Ended     *AtomicDateTime
}

// Variable is one custom key/value pair attached to the run metadata.
// Order is document order; names are not required to be unique.
type Variable struct {
	Name  string
	Value string
}

// Metadata carries the run identity fields introduced by format 1.6.
type Metadata struct {
	RunID        string
	PlatformName string
	UsesEmulator bool
	RegionName   string
	Variables    []Variable
}

func (m *Metadata) AddVariable(name, value string) {
	m.Variables = append(m.Variables, Variable{Name: name, Value: value})
}

// Run is the root aggregate for one game/category pairing.
type Run struct {
	GameIcon     []byte
	GameName     string
	CategoryName string
	Offset       TimeSpan
	AttemptCount uint32

	// Segments are in split order; the parser never reorders them.
	Segments []Segment

	// CustomComparisons is the set of user-authored comparison names, in
	// first-seen order.
	CustomComparisons []string

	AttemptHistory []Attempt
	Metadata       Metadata

	// Path is the source the run was loaded from, when known.
	Path string
}

func NewRun() *Run {
	return &Run{}
}

func (r *Run) PushSegment(s Segment) {
	r.Segments = append(r.Segments, s)
}

// AddCustomComparison registers a comparison name, ignoring duplicates.
func (r *Run) AddCustomComparison(name string) {
	if !slices.Contains(r.CustomComparisons, name) {
		r.CustomComparisons = append(r.CustomComparisons, name)
	}
}

func (r *Run) AddAttemptWithIndex(t Time, index int32, started, ended *AtomicDateTime, pauseTime *TimeSpan) {
	r.AttemptHistory = append(r.AttemptHistory, Attempt{
		Index:     index,
		Time:      t,
		PauseTime: pauseTime,
		Started:   started,
		Ended:     ended,
	})
}
