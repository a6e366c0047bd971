package bridge

import (
	"github.com/wippyai/xmp-bridge/engine"
	"github.com/wippyai/xmp-bridge/resource"
)

// DateTime handles wrap an engine.DateTime so callers without value
// access can hold and mutate one.

func (b *Bridge) newDateTime(v engine.DateTime) (DateTime, error) {
	h, err := b.insert(resource.KindDateTime, &v)
	return DateTime(h), err
}

// DateTimeNew wraps v in a new handle.
func (b *Bridge) DateTimeNew(rec *ErrorRecord, v engine.DateTime) DateTime {
	var d DateTime
	b.guard(rec, "datetime_new", func() (err error) {
		d, err = b.newDateTime(v)
		return err
	})
	return d
}

// DateTimeCurrent returns the engine's current local time.
func (b *Bridge) DateTimeCurrent(rec *ErrorRecord) DateTime {
	var d DateTime
	b.guard(rec, "datetime_current", func() error {
		v, err := b.toolkit.CurrentDateTime()
		if err != nil {
			return err
		}
		d, err = b.newDateTime(v)
		return err
	})
	return d
}

// DateTimeDrop releases d.
func (b *Bridge) DateTimeDrop(d DateTime) bool {
	return b.drop("datetime_drop", resource.Handle(d), resource.KindDateTime)
}

// DateTimeGet copies out the value behind d.
func (b *Bridge) DateTimeGet(d DateTime, rec *ErrorRecord) (engine.DateTime, bool) {
	var v engine.DateTime
	ok := b.guard(rec, "datetime_get", func() error {
		p, err := b.dateTime("datetime_get", d)
		if err != nil {
			return err
		}
		v = *p
		return nil
	})
	return v, ok
}

// DateTimeSet replaces the value behind d.
func (b *Bridge) DateTimeSet(d DateTime, rec *ErrorRecord, v engine.DateTime) bool {
	return b.withDateTime(d, rec, "datetime_set", func(p *engine.DateTime) error {
		*p = v
		return nil
	})
}

func (b *Bridge) withDateTime(d DateTime, rec *ErrorRecord, op string, fn func(*engine.DateTime) error) bool {
	return b.guard(rec, op, func() error {
		p, err := b.dateTime(op, d)
		if err != nil {
			return err
		}
		// work on a copy so a failing engine call leaves d untouched
		v := *p
		if err := fn(&v); err != nil {
			return err
		}
		*p = v
		return nil
	})
}

// DateTimeSetTimeZone sets d's zone to the local zone without changing
// the clock fields.
func (b *Bridge) DateTimeSetTimeZone(d DateTime, rec *ErrorRecord) bool {
	return b.withDateTime(d, rec, "datetime_set_time_zone", func(p *engine.DateTime) error {
		return b.toolkit.SetTimeZone(p)
	})
}

// DateTimeConvertToUTC shifts d to UTC.
func (b *Bridge) DateTimeConvertToUTC(d DateTime, rec *ErrorRecord) bool {
	return b.withDateTime(d, rec, "datetime_convert_to_utc", func(p *engine.DateTime) error {
		return b.toolkit.ConvertToUTC(p)
	})
}

// DateTimeConvertToLocal shifts d to the local time zone.
func (b *Bridge) DateTimeConvertToLocal(d DateTime, rec *ErrorRecord) bool {
	return b.withDateTime(d, rec, "datetime_convert_to_local", func(p *engine.DateTime) error {
		return b.toolkit.ConvertToLocal(p)
	})
}

// DateTimeFormat renders d in ISO 8601 form.
func (b *Bridge) DateTimeFormat(d DateTime, rec *ErrorRecord) OwnedString {
	return b.text(rec, "datetime_format", func() (string, error) {
		p, err := b.dateTime("datetime_format", d)
		if err != nil {
			return "", err
		}
		return b.toolkit.FormatDateTime(*p)
	})
}

// DateTimeParse parses an ISO 8601 string into a new handle.
func (b *Bridge) DateTimeParse(rec *ErrorRecord, s string) DateTime {
	var d DateTime
	b.guard(rec, "datetime_parse", func() error {
		v, err := b.toolkit.ParseDateTime(s)
		if err != nil {
			return err
		}
		d, err = b.newDateTime(v)
		return err
	})
	return d
}

// DateTimeCompare orders left and right: negative, zero or positive.
func (b *Bridge) DateTimeCompare(left, right DateTime, rec *ErrorRecord) int {
	var n int
	b.guard(rec, "datetime_compare", func() error {
		l, err := b.dateTime("datetime_compare", left)
		if err != nil {
			return err
		}
		r, err := b.dateTime("datetime_compare", right)
		if err != nil {
			return err
		}
		n, err = b.toolkit.CompareDateTime(*l, *r)
		return err
	})
	return n
}
