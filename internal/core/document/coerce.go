package document

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// ISOLayout is the canonical timestamp shape returned for temporal aggregates:
// UTC with millisecond precision.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// maxEpochMillis bounds numeric timestamps to the range a CMS date field can hold
// (±100,000,000 days around the epoch).
const maxEpochMillis = 8.64e15

// ToNumber coerces a document value to a finite float64.
// Numbers pass through, strings are trimmed and parsed. Empty, non-numeric and
// non-finite inputs report false; nothing is ever coerced to zero.
func ToNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		return parseNumeric(string(n))
	case string:
		return parseNumeric(n)
	}
	return 0, false
}

func parseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsRune(s, '_') {
		return 0, false
	}

	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			i, err := strconv.ParseUint(s, 0, 64)
			if err != nil {
				return 0, false
			}
			return float64(i), true
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// dateLayouts are tried in order for string inputs. Layouts without a zone are
// interpreted as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-01",
	"2006/01/02 15:04:05",
	"2006/01/02",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.RFC822Z,
	time.RFC822,
	time.ANSIC,
	time.UnixDate,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ToTime coerces a document value to a point in time.
// Accepts time.Time, epoch milliseconds and date/date-time strings.
func ToTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		return parseTime(t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return fromEpochMillis(f)
		}
		return time.Time{}, false
	case bool, nil:
		return time.Time{}, false
	}

	if f, ok := ToNumber(v); ok {
		return fromEpochMillis(f)
	}
	return time.Time{}, false
}

func fromEpochMillis(ms float64) (time.Time, bool) {
	if math.IsNaN(ms) || math.Abs(ms) > maxEpochMillis {
		return time.Time{}, false
	}
	ms = math.Trunc(ms)
	sec := int64(ms / 1000)
	rem := int64(ms) - sec*1000
	return time.Unix(sec, rem*int64(time.Millisecond)).UTC(), true
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	// "Tue Mar 05 2024 10:00:00 GMT+0100 (Central European Standard Time)"
	if i := strings.Index(s, " ("); i > 0 && strings.HasSuffix(s, ")") {
		s = s[:i]
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	// A bare year ("2024") is a valid date.
	if len(s) == 4 {
		if year, err := strconv.Atoi(s); err == nil && year >= 0 {
			return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// NormalizeTime returns the canonical ISO-8601 form of v, or nil when v is not a
// recognizable point in time.
func NormalizeTime(v interface{}) *string {
	t, ok := ToTime(v)
	if !ok {
		return nil
	}
	s := t.UTC().Format(ISOLayout)
	return &s
}
