package bridge

import (
	"github.com/wippyai/xmp-bridge/engine"
)

// Property getters report absence as found=false with a clean record.
// Option flags are passed through uninterpreted in both directions.

// GetProperty returns the value of a simple property.
func (b *Bridge) GetProperty(m Meta, rec *ErrorRecord, schemaNS, propName string) (OwnedString, engine.PropFlags, bool) {
	return b.getText(m, rec, "get_property", func(em engine.Meta) (string, engine.PropFlags, bool, error) {
		return em.GetProperty(schemaNS, propName)
	})
}

// getText runs a text getter and packages a found value.
func (b *Bridge) getText(m Meta, rec *ErrorRecord, op string, get func(engine.Meta) (string, engine.PropFlags, bool, error)) (OwnedString, engine.PropFlags, bool) {
	var flags engine.PropFlags
	s, found := b.optionalText(rec, op, func() (string, bool, error) {
		em, err := b.meta(op, m)
		if err != nil {
			return "", false, err
		}
		v, f, ok, err := get(em)
		flags = f
		return v, ok, err
	})
	if !found {
		flags = 0
	}
	return s, flags, found
}

// getTyped runs one typed getter under guard.
func getTyped[T any](b *Bridge, m Meta, rec *ErrorRecord, op string, get func(engine.Meta) (T, engine.PropFlags, bool, error)) (T, engine.PropFlags, bool) {
	var (
		value T
		flags engine.PropFlags
		found bool
	)
	b.guard(rec, op, func() error {
		em, err := b.meta(op, m)
		if err != nil {
			return err
		}
		v, f, ok, err := get(em)
		if err != nil || !ok {
			return err
		}
		value, flags, found = v, f, true
		return nil
	})
	return value, flags, found
}

// GetPropertyBool returns a property interpreted as a boolean.
func (b *Bridge) GetPropertyBool(m Meta, rec *ErrorRecord, schemaNS, propName string) (bool, engine.PropFlags, bool) {
	return getTyped(b, m, rec, "get_property_bool", func(em engine.Meta) (bool, engine.PropFlags, bool, error) {
		return em.GetPropertyBool(schemaNS, propName)
	})
}

// GetPropertyInt returns a property interpreted as a 32-bit integer.
func (b *Bridge) GetPropertyInt(m Meta, rec *ErrorRecord, schemaNS, propName string) (int32, engine.PropFlags, bool) {
	return getTyped(b, m, rec, "get_property_i32", func(em engine.Meta) (int32, engine.PropFlags, bool, error) {
		return em.GetPropertyInt(schemaNS, propName)
	})
}

// GetPropertyInt64 returns a property interpreted as a 64-bit integer.
func (b *Bridge) GetPropertyInt64(m Meta, rec *ErrorRecord, schemaNS, propName string) (int64, engine.PropFlags, bool) {
	return getTyped(b, m, rec, "get_property_i64", func(em engine.Meta) (int64, engine.PropFlags, bool, error) {
		return em.GetPropertyInt64(schemaNS, propName)
	})
}

// GetPropertyFloat returns a property interpreted as a float.
func (b *Bridge) GetPropertyFloat(m Meta, rec *ErrorRecord, schemaNS, propName string) (float64, engine.PropFlags, bool) {
	return getTyped(b, m, rec, "get_property_f64", func(em engine.Meta) (float64, engine.PropFlags, bool, error) {
		return em.GetPropertyFloat(schemaNS, propName)
	})
}

// GetPropertyDate returns a property interpreted as a date-time.
func (b *Bridge) GetPropertyDate(m Meta, rec *ErrorRecord, schemaNS, propName string) (engine.DateTime, engine.PropFlags, bool) {
	return getTyped(b, m, rec, "get_property_date", func(em engine.Meta) (engine.DateTime, engine.PropFlags, bool, error) {
		return em.GetPropertyDate(schemaNS, propName)
	})
}

// withMeta runs fn on the document behind m under guard.
func (b *Bridge) withMeta(m Meta, rec *ErrorRecord, op string, fn func(engine.Meta) error) bool {
	return b.guard(rec, op, func() error {
		em, err := b.meta(op, m)
		if err != nil {
			return err
		}
		return fn(em)
	})
}

// SetProperty creates or replaces a simple property.
func (b *Bridge) SetProperty(m Meta, rec *ErrorRecord, schemaNS, propName, value string, flags engine.PropFlags) bool {
	return b.withMeta(m, rec, "set_property", func(em engine.Meta) error {
		return em.SetProperty(schemaNS, propName, value, flags)
	})
}

// SetPropertyBool stores value as the engine's boolean text.
func (b *Bridge) SetPropertyBool(m Meta, rec *ErrorRecord, schemaNS, propName string, value bool, flags engine.PropFlags) bool {
	return b.withMeta(m, rec, "set_property_bool", func(em engine.Meta) error {
		return em.SetPropertyBool(schemaNS, propName, value, flags)
	})
}

// SetPropertyInt stores a 32-bit integer property.
func (b *Bridge) SetPropertyInt(m Meta, rec *ErrorRecord, schemaNS, propName string, value int32, flags engine.PropFlags) bool {
	return b.withMeta(m, rec, "set_property_i32", func(em engine.Meta) error {
		return em.SetPropertyInt(schemaNS, propName, value, flags)
	})
}

// SetPropertyInt64 stores a 64-bit integer property.
func (b *Bridge) SetPropertyInt64(m Meta, rec *ErrorRecord, schemaNS, propName string, value int64, flags engine.PropFlags) bool {
	return b.withMeta(m, rec, "set_property_i64", func(em engine.Meta) error {
		return em.SetPropertyInt64(schemaNS, propName, value, flags)
	})
}

// SetPropertyFloat stores a floating point property.
func (b *Bridge) SetPropertyFloat(m Meta, rec *ErrorRecord, schemaNS, propName string, value float64, flags engine.PropFlags) bool {
	return b.withMeta(m, rec, "set_property_f64", func(em engine.Meta) error {
		return em.SetPropertyFloat(schemaNS, propName, value, flags)
	})
}

// SetPropertyDate stores value in the engine's date format.
func (b *Bridge) SetPropertyDate(m Meta, rec *ErrorRecord, schemaNS, propName string, value engine.DateTime, flags engine.PropFlags) bool {
	return b.withMeta(m, rec, "set_property_date", func(em engine.Meta) error {
		return em.SetPropertyDate(schemaNS, propName, value, flags)
	})
}

// DoesPropertyExist reports whether the property is present.
// It returns false on failure.
func (b *Bridge) DoesPropertyExist(m Meta, rec *ErrorRecord, schemaNS, propName string) bool {
	var exists bool
	b.withMeta(m, rec, "does_property_exist", func(em engine.Meta) (err error) {
		exists, err = em.DoesPropertyExist(schemaNS, propName)
		return err
	})
	return exists
}

// DeleteProperty removes a property. Deleting an absent property succeeds.
func (b *Bridge) DeleteProperty(m Meta, rec *ErrorRecord, schemaNS, propName string) bool {
	return b.withMeta(m, rec, "delete_property", func(em engine.Meta) error {
		return em.DeleteProperty(schemaNS, propName)
	})
}
