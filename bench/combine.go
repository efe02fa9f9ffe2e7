package bench

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Combine merges two records of runs that together make up one logical run,
// such as the decompression and query phases of the "dec" approach. Neither
// argument is modified.
//
// Wall-clock times, I/O counters and CPU time are summed; memory peaks take the
// larger value. The mean load also takes the larger value, which is only an
// approximation of the combined mean: nothing downstream reads it.
//
// A field that is [NA] (or unparseable) on one side takes the other side's
// value.
func Combine(base, extra Record) Record {
	return Record{
		Seconds:  sumField(base.Seconds, extra.Seconds),
		HMS:      sumDurationField(base.HMS, extra.HMS),
		MaxRSS:   maxField(base.MaxRSS, extra.MaxRSS),
		MaxVMS:   maxField(base.MaxVMS, extra.MaxVMS),
		MaxUSS:   maxField(base.MaxUSS, extra.MaxUSS),
		MaxPSS:   maxField(base.MaxPSS, extra.MaxPSS),
		IOIn:     sumField(base.IOIn, extra.IOIn),
		IOOut:    sumField(base.IOOut, extra.IOOut),
		MeanLoad: maxField(base.MeanLoad, extra.MeanLoad),
		CPUTime:  sumField(base.CPUTime, extra.CPUTime),
	}
}

func parseNumber(value string) (float64, bool) {
	if value == NA {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// pickValid returns the value that parsed if only one of the two did. ok is
// false when both parsed, or when neither did (the result is then a).
func pickValid(a string, aOK bool, b string, bOK bool) (string, bool) {
	switch {
	case aOK && bOK:
		return "", false
	case aOK:
		return a, true
	case bOK:
		return b, true
	}
	return a, true
}

func sumField(a, b string) string {
	fa, aOK := parseNumber(a)
	fb, bOK := parseNumber(b)
	if value, decided := pickValid(a, aOK, b, bOK); decided {
		return value
	}

	ia, errA := strconv.ParseInt(strings.TrimSpace(a), 10, 64)
	ib, errB := strconv.ParseInt(strings.TrimSpace(b), 10, 64)
	if errA == nil && errB == nil {
		return strconv.FormatInt(ia+ib, 10)
	}
	return formatFloat(fa + fb)
}

func maxField(a, b string) string {
	fa, aOK := parseNumber(a)
	fb, bOK := parseNumber(b)
	if value, decided := pickValid(a, aOK, b, bOK); decided {
		return value
	}
	if fb > fa {
		return b
	}
	return a
}

func sumDurationField(a, b string) string {
	da, errA := ParseHMS(a)
	db, errB := ParseHMS(b)
	if value, decided := pickValid(a, errA == nil, b, errB == nil); decided {
		return value
	}
	return FormatHMS(da + db)
}

// formatFloat always keeps a fractional part, so 3 is written "3.0".
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	return s
}

// ParseHMS parses a duration written as `[D day[s], ]H:MM:SS[.ffffff]`.
func ParseHMS(value string) (time.Duration, error) {
	if value == NA {
		return 0, fmt.Errorf("duration is %s", NA)
	}

	var days int64
	clock := strings.TrimSpace(value)
	if dayPart, rest, found := strings.Cut(clock, ","); found {
		dayWords := strings.Fields(dayPart)
		if len(dayWords) != 2 || !strings.HasPrefix(dayWords[1], "day") {
			return 0, fmt.Errorf("invalid day count in duration %q", value)
		}
		var err error
		if days, err = strconv.ParseInt(dayWords[0], 10, 64); err != nil {
			return 0, fmt.Errorf("invalid day count in duration %q: %w", value, err)
		}
		clock = strings.TrimSpace(rest)
	}

	parts := strings.Split(clock, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("duration %q is not in h:m:s format", value)
	}
	hours, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hours in duration %q: %w", value, err)
	}
	minutes, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in duration %q: %w", value, err)
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || seconds < 0 {
		return 0, fmt.Errorf("invalid seconds in duration %q", value)
	}

	total := time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(math.Round(seconds*1e6))*time.Microsecond
	return total, nil
}

// FormatHMS is the inverse of [ParseHMS]. Fractional seconds are written with
// microsecond precision, and only when non-zero.
func FormatHMS(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	micros := d.Microseconds()
	days := micros / (24 * 3600 * 1e6)
	micros -= days * 24 * 3600 * 1e6
	hours := micros / (3600 * 1e6)
	micros -= hours * 3600 * 1e6
	minutes := micros / (60 * 1e6)
	micros -= minutes * 60 * 1e6
	seconds := micros / 1e6
	micros -= seconds * 1e6

	out := fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	if micros != 0 {
		out += fmt.Sprintf(".%06d", micros)
	}
	switch {
	case days == 1:
		out = "1 day, " + out
	case days > 1:
		out = fmt.Sprintf("%d days, %s", days, out)
	}
	return sign + out
}
