package wasmhost

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/xmp-bridge/engine"
	"github.com/wippyai/xmp-bridge/errors"
)

// guestMemory is bounds-checked access to a guest's linear memory.
type guestMemory struct {
	mem      api.Memory
	maxInput uint32
}

// bytes copies length bytes at offset out of guest memory.
func (m *guestMemory) bytes(op string, offset, length uint32) ([]byte, error) {
	if length > m.maxInput {
		return nil, errors.New(errors.PhaseGuest, errors.KindInvalidInput).
			Op(op).
			Value(length).
			Detail("input of %d bytes exceeds limit of %d", length, m.maxInput).
			Build()
	}
	if length == 0 {
		return nil, nil
	}
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, errors.OutOfBounds(op, offset, length)
	}
	return append([]byte(nil), data...), nil
}

func (m *guestMemory) writeU32(op string, offset, v uint32) error {
	if !m.mem.WriteUint32Le(offset, v) {
		return errors.OutOfBounds(op, offset, 4)
	}
	return nil
}

// checkRecord verifies that a whole record fits at ptr. Zero is never
// a valid record address.
func (m *guestMemory) checkRecord(op string, ptr uint32, l recordLayout) error {
	end := uint64(ptr) + uint64(l.size)
	if ptr == 0 || ptr%l.align != 0 || end > uint64(m.mem.Size()) {
		return errors.OutOfBounds(op, ptr, l.size)
	}
	return nil
}

func (m *guestMemory) store(ptr uint32, l recordLayout, name string, v uint32) {
	f := l.fields[name]
	switch f.size {
	case 1:
		m.mem.WriteByte(ptr+f.off, byte(v))
	case 4:
		m.mem.WriteUint32Le(ptr+f.off, v)
	}
}

func (m *guestMemory) load(ptr uint32, l recordLayout, name string) uint32 {
	f := l.fields[name]
	switch f.size {
	case 1:
		v, _ := m.mem.ReadByte(ptr + f.off)
		return uint32(v)
	case 4:
		v, _ := m.mem.ReadUint32Le(ptr + f.off)
		return v
	}
	return 0
}

func boolU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func (m *guestMemory) storeDateTime(op string, ptr uint32, v engine.DateTime) error {
	l := dateTimeLayout
	if err := m.checkRecord(op, ptr, l); err != nil {
		return err
	}
	m.store(ptr, l, "year", uint32(v.Year))
	m.store(ptr, l, "month", uint32(v.Month))
	m.store(ptr, l, "day", uint32(v.Day))
	m.store(ptr, l, "hour", uint32(v.Hour))
	m.store(ptr, l, "minute", uint32(v.Minute))
	m.store(ptr, l, "second", uint32(v.Second))
	m.store(ptr, l, "has-date", boolU32(v.HasDate))
	m.store(ptr, l, "has-time", boolU32(v.HasTime))
	m.store(ptr, l, "has-timezone", boolU32(v.HasTimeZone))
	m.store(ptr, l, "tz-sign", uint32(uint8(v.TZSign)))
	m.store(ptr, l, "tz-hour", uint32(v.TZHour))
	m.store(ptr, l, "tz-minute", uint32(v.TZMinute))
	m.store(ptr, l, "nanosecond", uint32(v.Nanosecond))
	return nil
}

func (m *guestMemory) loadDateTime(op string, ptr uint32) (engine.DateTime, error) {
	l := dateTimeLayout
	if err := m.checkRecord(op, ptr, l); err != nil {
		return engine.DateTime{}, err
	}
	return engine.DateTime{
		Year:        int32(m.load(ptr, l, "year")),
		Month:       int32(m.load(ptr, l, "month")),
		Day:         int32(m.load(ptr, l, "day")),
		Hour:        int32(m.load(ptr, l, "hour")),
		Minute:      int32(m.load(ptr, l, "minute")),
		Second:      int32(m.load(ptr, l, "second")),
		HasDate:     m.load(ptr, l, "has-date") != 0,
		HasTime:     m.load(ptr, l, "has-time") != 0,
		HasTimeZone: m.load(ptr, l, "has-timezone") != 0,
		TZSign:      int8(uint8(m.load(ptr, l, "tz-sign"))),
		TZHour:      int32(m.load(ptr, l, "tz-hour")),
		TZMinute:    int32(m.load(ptr, l, "tz-minute")),
		Nanosecond:  int32(m.load(ptr, l, "nanosecond")),
	}, nil
}
