// Package parser implements the single-pass streaming parser for legacy
// split-timer save files. The format went through several incompatible
// revisions that reuse tag names with different semantics; a version gate
// read off the root element picks the grammar each builder applies.
package parser

import (
	"io"
	"strconv"
	"time"

	"github.com/speedkit/splitvault/internal/splits"
)

// Parse reads one save-file document from r and returns the populated run
// aggregate, with path attached on success. Any malformed input is fatal:
// a partially built run is never returned.
func Parse(r io.Reader, path string) (*splits.Run, error) {
	s := newScanner(r)
	run := splits.NewRun()

	err := readRootElement(s, func(root tag) error {
		if root.name != "Run" {
			return skipElement(s)
		}
		v := defaultVersion
		if raw, ok := root.attr("version"); ok {
			var err error
			if v, err = parseVersion(raw); err != nil {
				return err
			}
		}
		return parseRun(v, s, run)
	})
	if err != nil {
		return nil, err
	}

	run.Path = path
	return run, nil
}

func parseRun(v version, s *scanner, run *splits.Run) error {
	return readChildren(s, func(child tag) error {
		switch child.name {
		case "GameIcon":
			return readImage(s, func(img []byte) { run.GameIcon = img })
		case "GameName":
			return readText(s, func(t string) error { run.GameName = t; return nil })
		case "CategoryName":
			return readText(s, func(t string) error { run.CategoryName = t; return nil })
		case "Offset":
			return readTimeSpan(s, func(ts splits.TimeSpan) { run.Offset = ts })
		case "AttemptCount":
			return readText(s, func(t string) error {
				n, err := strconv.ParseUint(t, 10, 32)
				if err != nil {
					return wrapError(KindIntegerFormat, err)
				}
				run.AttemptCount = uint32(n)
				return nil
			})
		case "AttemptHistory":
			return parseAttemptHistory(v, s, run)
		case "RunHistory":
			return parseRunHistory(v, s, run)
		case "Metadata":
			return parseMetadata(v, s, &run.Metadata)
		case "Segments":
			return readChildren(s, func(segTag tag) error {
				if segTag.name != "Segment" {
					return skipElement(s)
				}
				seg, err := parseSegment(v, s, run)
				if err != nil {
					return err
				}
				run.PushSegment(seg)
				return nil
			})
		case "AutoSplitterSettings":
			// not modeled
			return skipElement(s)
		default:
			return skipElement(s)
		}
	})
}

func parseMetadata(v version, s *scanner, m *splits.Metadata) error {
	if !v.hasMetadata() {
		return skipElement(s)
	}
	return readChildren(s, func(child tag) error {
		switch child.name {
		case "Run":
			id, err := child.requiredAttr("id")
			if err != nil {
				return err
			}
			m.RunID = id
			return skipElement(s)
		case "Platform":
			if raw, ok := child.attr("usesEmulator"); ok {
				usesEmulator, err := parseBool(raw)
				if err != nil {
					return err
				}
				m.UsesEmulator = usesEmulator
			}
			return readText(s, func(t string) error { m.PlatformName = t; return nil })
		case "Region":
			return readText(s, func(t string) error { m.RegionName = t; return nil })
		case "Variables":
			return readChildren(s, func(varTag tag) error {
				name, err := varTag.requiredAttr("name")
				if err != nil {
					return err
				}
				return readText(s, func(t string) error {
					m.AddVariable(name, t)
					return nil
				})
			})
		default:
			return skipElement(s)
		}
	})
}

func parseSegment(v version, s *scanner, run *splits.Run) (splits.Segment, error) {
	seg := splits.NewSegment("")

	err := readChildren(s, func(child tag) error {
		switch child.name {
		case "Name":
			return readText(s, func(t string) error { seg.Name = t; return nil })
		case "Icon":
			return readImage(s, func(img []byte) { seg.Icon = img })
		case "SplitTimes":
			if !v.hasNamedSplitTimes() {
				return skipElement(s)
			}
			return readChildren(s, func(split tag) error {
				if split.name != "SplitTime" {
					return skipElement(s)
				}
				name, err := split.requiredAttr("name")
				if err != nil {
					return err
				}
				run.AddCustomComparison(name)
				return readTimeGated(s, v.timeBodyGrammar(), func(t splits.Time) {
					seg.SetComparison(name, t)
				})
			})
		case "PersonalBestSplitTime":
			if v.hasNamedSplitTimes() {
				return skipElement(s)
			}
			return readTimeLegacy(s, func(t splits.Time) { seg.PersonalBestSplitTime = t })
		case "BestSegmentTime":
			return readTimeGated(s, v.timeBodyGrammar(), func(t splits.Time) { seg.BestSegmentTime = t })
		case "SegmentHistory":
			return readChildren(s, func(entry tag) error {
				raw, err := entry.requiredAttr("id")
				if err != nil {
					return err
				}
				index, err := parseAttemptIndex(raw)
				if err != nil {
					return err
				}
				return readTimeGated(s, v.timeBodyGrammar(), func(t splits.Time) {
					seg.InsertSegmentHistory(index, t)
				})
			})
		default:
			return skipElement(s)
		}
	})
	if err != nil {
		return splits.Segment{}, err
	}
	return seg, nil
}

// parseRunHistory handles the two pre-1.5 history shapes. From 1.5 on the
// subtree is dead data superseded by AttemptHistory and is skipped whole.
func parseRunHistory(v version, s *scanner, run *splits.Run) error {
	if v.hasAttemptHistory() {
		return skipElement(s)
	}
	g := v.timeBodyGrammar()
	return readChildren(s, func(entry tag) error {
		raw, err := entry.requiredAttr("id")
		if err != nil {
			return err
		}
		index, err := parseAttemptIndex(raw)
		if err != nil {
			return err
		}
		return readTimeGated(s, g, func(t splits.Time) {
			run.AddAttemptWithIndex(t, index, nil, nil, nil)
		})
	})
}

func parseAttemptHistory(v version, s *scanner, run *splits.Run) error {
	if !v.hasAttemptHistory() {
		return skipElement(s)
	}
	return readChildren(s, func(entry tag) error {
		var (
			t             splits.Time
			pauseTime     *splits.TimeSpan
			index         *int32
			started       *time.Time
			startedSynced bool
			ended         *time.Time
			endedSynced   bool
		)

		for _, a := range entry.attrs {
			switch a.Name.Local {
			case "id":
				i, err := parseAttemptIndex(a.Value)
				if err != nil {
					return err
				}
				index = &i
			case "started":
				ts, err := parseAttemptTimestamp(a.Value)
				if err != nil {
					return err
				}
				started = &ts
			case "isStartedSynced":
				synced, err := parseBool(a.Value)
				if err != nil {
					return err
				}
				startedSynced = synced
			case "ended":
				ts, err := parseAttemptTimestamp(a.Value)
				if err != nil {
					return err
				}
				ended = &ts
			case "isEndedSynced":
				synced, err := parseBool(a.Value)
				if err != nil {
					return err
				}
				endedSynced = synced
			}
		}
		if index == nil {
			return wrapError(KindAttributeNotFound, errAttemptMissingID)
		}

		err := readChildren(s, func(child tag) error {
			switch child.name {
			case "RealTime":
				return readTimeSpanOpt(s, func(ts *splits.TimeSpan) { t.RealTime = ts })
			case "GameTime":
				return readTimeSpanOpt(s, func(ts *splits.TimeSpan) { t.GameTime = ts })
			case "PauseTime":
				return readTimeSpanOpt(s, func(ts *splits.TimeSpan) { pauseTime = ts })
			default:
				return skipElement(s)
			}
		})
		if err != nil {
			return err
		}

		var startedAt, endedAt *splits.AtomicDateTime
		if started != nil {
			at := splits.NewAtomicDateTime(*started, startedSynced)
			startedAt = &at
		}
		if ended != nil {
			at := splits.NewAtomicDateTime(*ended, endedSynced)
			endedAt = &at
		}
		run.AddAttemptWithIndex(t, *index, startedAt, endedAt, pauseTime)
		return nil
	})
}

func parseAttemptIndex(text string) (int32, error) {
	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return 0, wrapError(KindIntegerFormat, err)
	}
	return int32(n), nil
}
