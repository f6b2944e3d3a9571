package splits

// Segment is one named checkpoint within a run.
type Segment struct {
	Name string
	Icon []byte

	// PersonalBestSplitTime is only populated by pre-1.3 documents, which
	// predate named comparisons.
	PersonalBestSplitTime Time

	BestSegmentTime Time

	// Comparisons maps a comparison name to this segment's time under it.
	Comparisons map[string]Time

	// SegmentHistory maps an attempt index to the segment time achieved
	// during that attempt.
	SegmentHistory map[int32]Time
}

func NewSegment(name string) Segment {
	return Segment{
		Name:           name,
		Comparisons:    make(map[string]Time),
		SegmentHistory: make(map[int32]Time),
	}
}

func (s *Segment) SetComparison(name string, t Time) {
	s.Comparisons[name] = t
}

// InsertSegmentHistory records the time for one attempt index. A duplicate
// index overwrites the earlier entry.
func (s *Segment) InsertSegmentHistory(index int32, t Time) {
	s.SegmentHistory[index] = t
}
