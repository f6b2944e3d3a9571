package parser

import (
	"time"

	"github.com/speedkit/splitvault/internal/splits"
)

// attemptTimestampLayout is the fixed month/day/year grammar legacy
// documents use for attempt start and end timestamps.
const attemptTimestampLayout = "01/02/2006 15:04:05"

// readText expects exactly one text event (or an immediate close, read as
// empty text) followed by the element's close. Any nested element is fatal.
func readText(s *scanner, f func(text string) error) error {
	kind, _, err := s.next()
	if err != nil {
		return err
	}
	switch kind {
	case eventOpen:
		return newError(KindUnexpectedNestedElement)
	case eventClose:
		return f("")
	case eventText:
		if err := f(s.text()); err != nil {
			return err
		}
		return endTagImmediately(s)
	default:
		return newError(KindUnexpectedEndOfInput)
	}
}

// endTagImmediately consumes the current element's close, tolerating
// further text but no nested elements.
func endTagImmediately(s *scanner) error {
	for {
		kind, _, err := s.next()
		if err != nil {
			return err
		}
		switch kind {
		case eventOpen:
			return newError(KindUnexpectedNestedElement)
		case eventClose:
			return nil
		case eventEOF:
			return newError(KindUnexpectedEndOfInput)
		}
	}
}

// skipElement discards the remainder of an element whose open event has
// already been consumed, contents ignored.
func skipElement(s *scanner) error {
	depth := 0
	for {
		kind, _, err := s.next()
		if err != nil {
			return err
		}
		switch kind {
		case eventOpen:
			depth++
		case eventClose:
			if depth == 0 {
				return nil
			}
			depth--
		case eventEOF:
			return newError(KindUnexpectedEndOfInput)
		}
	}
}

// readChildren invokes f for every child element until the current
// element's close. f must fully consume each child it is handed.
func readChildren(s *scanner, f func(t tag) error) error {
	for {
		kind, t, err := s.next()
		if err != nil {
			return err
		}
		switch kind {
		case eventOpen:
			if err := f(t); err != nil {
				return err
			}
		case eventClose:
			return nil
		case eventEOF:
			return newError(KindUnexpectedEndOfInput)
		}
	}
}

// readRootElement hands the document's single root element to f.
func readRootElement(s *scanner, f func(t tag) error) error {
	for {
		kind, t, err := s.next()
		if err != nil {
			return err
		}
		switch kind {
		case eventOpen:
			return f(t)
		case eventEOF:
			return newError(KindUnexpectedEndOfInput)
		}
	}
}

func readTimeSpan(s *scanner, f func(ts splits.TimeSpan)) error {
	return readText(s, func(text string) error {
		if text == "" {
			f(splits.TimeSpan{})
			return nil
		}
		ts, err := parseTimeSpan(text)
		if err != nil {
			return err
		}
		f(ts)
		return nil
	})
}

// readTimeSpanOpt treats empty text as "absent", which is distinct from a
// zero span.
func readTimeSpanOpt(s *scanner, f func(ts *splits.TimeSpan)) error {
	return readText(s, func(text string) error {
		if text == "" {
			f(nil)
			return nil
		}
		ts, err := parseTimeSpan(text)
		if err != nil {
			return err
		}
		f(&ts)
		return nil
	})
}

// readTime reads a Time from RealTime/GameTime children; unrecognized
// children are skipped.
func readTime(s *scanner, f func(t splits.Time)) error {
	var t splits.Time
	err := readChildren(s, func(child tag) error {
		switch child.name {
		case "RealTime":
			return readTimeSpanOpt(s, func(ts *splits.TimeSpan) { t.RealTime = ts })
		case "GameTime":
			return readTimeSpanOpt(s, func(ts *splits.TimeSpan) { t.GameTime = ts })
		default:
			return skipElement(s)
		}
	})
	if err != nil {
		return err
	}
	f(t)
	return nil
}

// readTimeLegacy reads the pre-1.4.1 single-value body into the real-time
// slot only.
func readTimeLegacy(s *scanner, f func(t splits.Time)) error {
	return readTimeSpanOpt(s, func(ts *splits.TimeSpan) {
		f(splits.Time{}.WithRealTime(ts))
	})
}

// readTimeGated picks the body grammar for the given version gate.
func readTimeGated(s *scanner, g timeGrammar, f func(t splits.Time)) error {
	if g == timeGrammarModern {
		return readTime(s, f)
	}
	return readTimeLegacy(s, f)
}

// readImage reads the element's text and best-effort decodes the legacy
// image container; an undecodable payload yields an empty image.
func readImage(s *scanner, f func(image []byte)) error {
	return readText(s, func(text string) error {
		f(decodeLegacyImage(text))
		return nil
	})
}

// parseBool accepts exactly the literal tokens used by the format.
func parseBool(text string) (bool, error) {
	switch text {
	case "True":
		return true, nil
	case "False":
		return false, nil
	default:
		return false, newError(KindInvalidBoolean)
	}
}

func parseAttemptTimestamp(text string) (time.Time, error) {
	t, err := time.ParseInLocation(attemptTimestampLayout, text, time.UTC)
	if err != nil {
		return time.Time{}, wrapError(KindDateFormat, err)
	}
	return t, nil
}
