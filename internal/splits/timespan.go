package splits

import (
	"fmt"
	"time"
)

// TimeSpan is a signed duration with sub-second precision.
type TimeSpan struct {
	d time.Duration
}

func TimeSpanFromDuration(d time.Duration) TimeSpan {
	return TimeSpan{d: d}
}

func TimeSpanFromSeconds(s float64) TimeSpan {
	return TimeSpan{d: time.Duration(s * float64(time.Second))}
}

// TimeSpanFromDays builds a span covering the given whole-day count.
func TimeSpanFromDays(days int64) TimeSpan {
	return TimeSpan{d: time.Duration(days) * 24 * time.Hour}
}

func (t TimeSpan) Add(o TimeSpan) TimeSpan {
	return TimeSpan{d: t.d + o.d}
}

func (t TimeSpan) Sub(o TimeSpan) TimeSpan {
	return TimeSpan{d: t.d - o.d}
}

func (t TimeSpan) Duration() time.Duration {
	return t.d
}

func (t TimeSpan) Seconds() float64 {
	return t.d.Seconds()
}

func (t TimeSpan) IsZero() bool {
	return t.d == 0
}

func (t TimeSpan) String() string {
	return fmt.Sprintf("%gs", t.d.Seconds())
}
