package parser

import (
	"strconv"
	"strings"
)

// version is a 4-component format version, compared lexicographically.
type version [4]uint32

// The four thresholds that gate grammar changes across the format's history.
var (
	v1_3_0_0 = version{1, 3, 0, 0}
	v1_4_1_0 = version{1, 4, 1, 0}
	v1_5_0_0 = version{1, 5, 0, 0}
	v1_6_0_0 = version{1, 6, 0, 0}
)

// defaultVersion is assumed when the document carries no version attribute.
var defaultVersion = version{1, 0, 0, 0}

func parseVersion(text string) (version, error) {
	v := defaultVersion
	for i, part := range strings.Split(text, ".") {
		if i >= len(v) {
			break
		}
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return version{}, wrapError(KindIntegerFormat, err)
		}
		v[i] = uint32(n)
	}
	return v, nil
}

func (v version) atLeast(o version) bool {
	for i := range v {
		switch {
		case v[i] > o[i]:
			return true
		case v[i] < o[i]:
			return false
		}
	}
	return true
}

// timeGrammar names which time body grammar a gated tag uses.
type timeGrammar uint8

const (
	// timeGrammarModern is the RealTime/GameTime child-element body.
	timeGrammarModern timeGrammar = iota
	// timeGrammarLegacy is a single optional time span decoded into the
	// real-time slot.
	timeGrammarLegacy
)

// timeBodyGrammar is the 1.4.1 gate shared by split times, best segment
// times, segment history and run history.
func (v version) timeBodyGrammar() timeGrammar {
	if v.atLeast(v1_4_1_0) {
		return timeGrammarModern
	}
	return timeGrammarLegacy
}

// hasNamedSplitTimes reports whether SplitTimes subtrees carry data (1.3+).
// Below that, the personal best lives in PersonalBestSplitTime instead.
func (v version) hasNamedSplitTimes() bool {
	return v.atLeast(v1_3_0_0)
}

// hasAttemptHistory reports whether attempts live in AttemptHistory (1.5+),
// which supersedes RunHistory entirely.
func (v version) hasAttemptHistory() bool {
	return v.atLeast(v1_5_0_0)
}

// hasMetadata reports whether the Metadata subtree carries data (1.6+).
func (v version) hasMetadata() bool {
	return v.atLeast(v1_6_0_0)
}

func (v version) String() string {
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = strconv.FormatUint(uint64(c), 10)
	}
	return strings.Join(parts, ".")
}
