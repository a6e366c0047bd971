package testbed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wippyai/xmp-bridge/engine"
	"github.com/wippyai/xmp-bridge/errors"
)

func localNow() engine.DateTime {
	return fromTime(time.Now())
}

func fromTime(tm time.Time) engine.DateTime {
	dt := engine.DateTime{
		Year:        int32(tm.Year()),
		Month:       int32(tm.Month()),
		Day:         int32(tm.Day()),
		Hour:        int32(tm.Hour()),
		Minute:      int32(tm.Minute()),
		Second:      int32(tm.Second()),
		Nanosecond:  int32(tm.Nanosecond()),
		HasDate:     true,
		HasTime:     true,
		HasTimeZone: true,
	}
	_, off := tm.Zone()
	setOffset(&dt, off)
	return dt
}

func setOffset(dt *engine.DateTime, off int) {
	switch {
	case off < 0:
		dt.TZSign = engine.TZWest
		off = -off
	case off > 0:
		dt.TZSign = engine.TZEast
	default:
		dt.TZSign = engine.TZUTC
	}
	dt.TZHour = int32(off / 3600)
	dt.TZMinute = int32(off % 3600 / 60)
}

func offset(dt engine.DateTime) int {
	secs := int(dt.TZHour)*3600 + int(dt.TZMinute)*60
	switch dt.TZSign {
	case engine.TZWest:
		return -secs
	case engine.TZEast:
		return secs
	}
	return 0
}

func toTime(dt engine.DateTime, loc *time.Location) time.Time {
	if dt.HasTimeZone {
		loc = time.FixedZone("", offset(dt))
	}
	month, day := dt.Month, dt.Day
	if month == 0 {
		month = 1
	}
	if day == 0 {
		day = 1
	}
	return time.Date(int(dt.Year), time.Month(month), int(day),
		int(dt.Hour), int(dt.Minute), int(dt.Second), int(dt.Nanosecond), loc)
}

func (t *Toolkit) CurrentDateTime() (engine.DateTime, error) {
	if err := t.trip("CurrentDateTime"); err != nil {
		return engine.DateTime{}, err
	}
	return t.clock(), nil
}

// SetTimeZone assigns the local zone to a zone-less value.
func (t *Toolkit) SetTimeZone(dt *engine.DateTime) error {
	if err := t.trip("SetTimeZone"); err != nil {
		return err
	}
	if dt.HasTimeZone {
		engine.Raise(int32(errors.BadParam), "SetTimeZone can only be used on zone-less times")
	}
	_, off := toTime(*dt, time.Local).Zone()
	setOffset(dt, off)
	dt.HasTimeZone = true
	return nil
}

// ConvertToUTC leaves zone-less values untouched.
func (t *Toolkit) ConvertToUTC(dt *engine.DateTime) error {
	if err := t.trip("ConvertToUTC"); err != nil {
		return err
	}
	if !dt.HasTimeZone {
		return nil
	}
	*dt = withFlags(fromTime(toTime(*dt, time.UTC).UTC()), *dt)
	return nil
}

// ConvertToLocal leaves zone-less values untouched.
func (t *Toolkit) ConvertToLocal(dt *engine.DateTime) error {
	if err := t.trip("ConvertToLocal"); err != nil {
		return err
	}
	if !dt.HasTimeZone {
		return nil
	}
	*dt = withFlags(fromTime(toTime(*dt, time.UTC).In(time.Local)), *dt)
	return nil
}

func withFlags(dt, from engine.DateTime) engine.DateTime {
	dt.HasDate = from.HasDate
	dt.HasTime = from.HasTime
	return dt
}

// CompareDateTime orders by instant. Zone-less values are read as UTC.
func (t *Toolkit) CompareDateTime(left, right engine.DateTime) (int, error) {
	if err := t.trip("CompareDateTime"); err != nil {
		return 0, err
	}
	return toTime(left, time.UTC).Compare(toTime(right, time.UTC)), nil
}

// FormatDateTime renders ISO 8601, omitting trailing parts that are zero.
func (t *Toolkit) FormatDateTime(dt engine.DateTime) (string, error) {
	if err := t.trip("FormatDateTime"); err != nil {
		return "", err
	}
	return formatDateTime(dt), nil
}

func formatDateTime(dt engine.DateTime) string {
	var b strings.Builder
	if dt.HasDate {
		fmt.Fprintf(&b, "%04d", dt.Year)
		if dt.Month != 0 {
			fmt.Fprintf(&b, "-%02d", dt.Month)
			if dt.Day != 0 {
				fmt.Fprintf(&b, "-%02d", dt.Day)
			}
		}
	}
	if dt.HasTime {
		fmt.Fprintf(&b, "T%02d:%02d", dt.Hour, dt.Minute)
		if dt.Second != 0 || dt.Nanosecond != 0 {
			fmt.Fprintf(&b, ":%02d", dt.Second)
			if dt.Nanosecond != 0 {
				frac := strings.TrimRight(fmt.Sprintf("%09d", dt.Nanosecond), "0")
				b.WriteString("." + frac)
			}
		}
		if dt.HasTimeZone {
			switch dt.TZSign {
			case engine.TZUTC:
				b.WriteByte('Z')
			case engine.TZWest:
				fmt.Fprintf(&b, "-%02d:%02d", dt.TZHour, dt.TZMinute)
			default:
				fmt.Fprintf(&b, "+%02d:%02d", dt.TZHour, dt.TZMinute)
			}
		}
	}
	return b.String()
}

func (t *Toolkit) ParseDateTime(s string) (engine.DateTime, error) {
	if err := t.trip("ParseDateTime"); err != nil {
		return engine.DateTime{}, err
	}
	dt, ok := parseDateTime(s)
	if !ok {
		engine.Raise(int32(errors.BadValue), "Invalid date string")
	}
	return dt, nil
}

// dateScanner walks an ISO 8601 string.
type dateScanner struct {
	s   string
	pos int
}

func (d *dateScanner) done() bool { return d.pos >= len(d.s) }

func (d *dateScanner) peek() byte {
	if d.done() {
		return 0
	}
	return d.s[d.pos]
}

func (d *dateScanner) accept(c byte) bool {
	if d.peek() == c {
		d.pos++
		return true
	}
	return false
}

// digits reads exactly n decimal digits.
func (d *dateScanner) digits(n int) (int32, bool) {
	if d.pos+n > len(d.s) {
		return 0, false
	}
	v, err := strconv.ParseUint(d.s[d.pos:d.pos+n], 10, 32)
	if err != nil {
		return 0, false
	}
	d.pos += n
	return int32(v), true
}

func parseDateTime(s string) (engine.DateTime, bool) {
	var dt engine.DateTime
	d := &dateScanner{s: s}
	var ok bool

	if d.peek() != 'T' {
		if dt.Year, ok = d.digits(4); !ok {
			return dt, false
		}
		dt.HasDate = true
		if d.accept('-') {
			if dt.Month, ok = d.digits(2); !ok || dt.Month < 1 || dt.Month > 12 {
				return dt, false
			}
			if d.accept('-') {
				if dt.Day, ok = d.digits(2); !ok || dt.Day < 1 || dt.Day > 31 {
					return dt, false
				}
			}
		}
	}

	if d.accept('T') {
		dt.HasTime = true
		if dt.Hour, ok = d.digits(2); !ok || dt.Hour > 23 || !d.accept(':') {
			return dt, false
		}
		if dt.Minute, ok = d.digits(2); !ok || dt.Minute > 59 {
			return dt, false
		}
		if d.accept(':') {
			if dt.Second, ok = d.digits(2); !ok || dt.Second > 59 {
				return dt, false
			}
			if d.accept('.') {
				start := d.pos
				for !d.done() && d.peek() >= '0' && d.peek() <= '9' {
					d.pos++
				}
				frac := d.s[start:d.pos]
				if frac == "" || len(frac) > 9 {
					return dt, false
				}
				frac += strings.Repeat("0", 9-len(frac))
				n, _ := strconv.Atoi(frac)
				dt.Nanosecond = int32(n)
			}
		}

		switch c := d.peek(); c {
		case 'Z':
			d.pos++
			dt.HasTimeZone = true
			dt.TZSign = engine.TZUTC
		case '+', '-':
			d.pos++
			dt.HasTimeZone = true
			dt.TZSign = engine.TZEast
			if c == '-' {
				dt.TZSign = engine.TZWest
			}
			if dt.TZHour, ok = d.digits(2); !ok || dt.TZHour > 23 || !d.accept(':') {
				return dt, false
			}
			if dt.TZMinute, ok = d.digits(2); !ok || dt.TZMinute > 59 {
				return dt, false
			}
			if dt.TZHour == 0 && dt.TZMinute == 0 {
				dt.TZSign = engine.TZUTC
			}
		}
	}

	return dt, d.done() && (dt.HasDate || dt.HasTime)
}
