package internal

import "fmt"

// InvalidRangeError reports a report config whose range cannot be bucketed:
// a reversed range, an hourly report over several days, or an unparseable
// date, time zone or granularity.
type InvalidRangeError struct {
	RangeStart string
	RangeEnd   string
	Reason     string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range %s..%s: %s", e.RangeStart, e.RangeEnd, e.Reason)
}

func invalidRange(start, end, format string, args ...any) *InvalidRangeError {
	return &InvalidRangeError{
		RangeStart: start,
		RangeEnd:   end,
		Reason:     fmt.Sprintf(format, args...),
	}
}
