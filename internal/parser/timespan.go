package parser

import (
	"strconv"
	"strings"

	"github.com/speedkit/splitvault/internal/splits"
)

// parseTimeSpan decodes one of the two textual duration encodings.
//
// The day-qualified encoding is only in effect when the text contains both
// a '.' and a ':' with the '.' first: the prefix before the first '.' is a
// whole-day count and the remainder is a time of day added to those days.
// Everything else is the scalar encoding, which accepts either a plain
// signed decimal seconds value ("12.5") or a colon-separated clock value
// ("02:30:00", "4:20.69"). A bare decimal like "12.5" therefore always
// means 12.5 seconds, while "1.02:30:00" means 1 day + 02:30:00.
func parseTimeSpan(text string) (splits.TimeSpan, error) {
	if dot := strings.IndexByte(text, '.'); dot >= 0 {
		if colon := strings.IndexByte(text, ':'); colon >= 0 && dot < colon {
			days, err := strconv.ParseInt(text[:dot], 10, 64)
			if err != nil {
				return splits.TimeSpan{}, wrapError(KindIntegerFormat, err)
			}
			timeOfDay, err := parseTimeSpanScalar(text[dot+1:])
			if err != nil {
				return splits.TimeSpan{}, err
			}
			return splits.TimeSpanFromDays(days).Add(timeOfDay), nil
		}
	}
	return parseTimeSpanScalar(text)
}

func parseTimeSpanScalar(text string) (splits.TimeSpan, error) {
	negative := strings.HasPrefix(text, "-")
	trimmed := strings.TrimPrefix(text, "-")

	var total float64
	parts := strings.Split(trimmed, ":")
	switch len(parts) {
	case 1:
		seconds, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return splits.TimeSpan{}, wrapError(KindTimeSpanFormat, err)
		}
		total = seconds
	case 2:
		minutes, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil {
			return splits.TimeSpan{}, wrapError(KindTimeSpanFormat, err)
		}
		seconds, err := strconv.ParseFloat(parts[1], 64)
		if err != nil || seconds < 0 {
			return splits.TimeSpan{}, wrapError(KindTimeSpanFormat, err)
		}
		total = float64(minutes)*60 + seconds
	case 3:
		hours, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil {
			return splits.TimeSpan{}, wrapError(KindTimeSpanFormat, err)
		}
		minutes, err := strconv.ParseUint(parts[1], 10, 32)
		if err != nil {
			return splits.TimeSpan{}, wrapError(KindTimeSpanFormat, err)
		}
		seconds, err := strconv.ParseFloat(parts[2], 64)
		if err != nil || seconds < 0 {
			return splits.TimeSpan{}, wrapError(KindTimeSpanFormat, err)
		}
		total = float64(hours)*3600 + float64(minutes)*60 + seconds
	default:
		return splits.TimeSpan{}, newError(KindTimeSpanFormat)
	}

	if negative {
		total = -total
	}
	return splits.TimeSpanFromSeconds(total), nil
}
