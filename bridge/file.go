package bridge

import (
	"github.com/wippyai/xmp-bridge/engine"
	"github.com/wippyai/xmp-bridge/errors"
	"github.com/wippyai/xmp-bridge/resource"
)

// FileNew creates a file object with the error callback installed.
// It returns 0 on failure.
func (b *Bridge) FileNew(rec *ErrorRecord) File {
	var f File
	b.guard(rec, "file_new", func() error {
		ef, err := b.toolkit.NewFile()
		if err != nil {
			return err
		}
		c := &fileCapsule{b: b, file: ef}
		defer func() {
			if f == 0 {
				c.Drop()
			}
		}()
		if err := ef.SetErrorCallback(b.interceptor(c), b.callbackLimit); err != nil {
			return err
		}
		h, err := b.insert(resource.KindFile, c)
		if err != nil {
			return err
		}
		f = File(h)
		return nil
	})
	return f
}

// FileDrop releases f. An open file is released without being closed
// through the bridge.
func (b *Bridge) FileDrop(f File) bool {
	return b.drop("file_drop", resource.Handle(f), resource.KindFile)
}

// fileCall runs fn on the capsule behind f and then surfaces anything the
// error callback recorded. A callback report replaces whatever fn left in
// rec, since it carries the originating cause.
func (b *Bridge) fileCall(f File, rec *ErrorRecord, op string, fn func(c *fileCapsule) error) bool {
	if rec == nil {
		var scratch ErrorRecord
		rec = &scratch
		defer b.reset(rec)
	}

	var c *fileCapsule
	ok := b.guard(rec, op, func() error {
		var err error
		if c, err = b.file(op, f); err != nil {
			return err
		}
		return fn(c)
	})
	if c != nil && b.reconcile(c, rec) {
		ok = false
	}
	return ok
}

// FileOpen opens path with the engine detecting the format.
// A refusal without any reported cause becomes NoFileHandler.
func (b *Bridge) FileOpen(f File, rec *ErrorRecord, path string, flags engine.OpenFlags) bool {
	return b.fileCall(f, rec, "file_open", func(c *fileCapsule) error {
		opened, err := c.file.Open(path, engine.UnknownFormat, flags)
		if err != nil {
			return err
		}
		if !opened {
			return engine.NewFault(int32(errors.NoFileHandler), "could not open file")
		}
		return nil
	})
}

// FileClose closes f. The request is forwarded to the engine whether or
// not f is open.
func (b *Bridge) FileClose(f File, rec *ErrorRecord, flags engine.CloseFlags) bool {
	return b.fileCall(f, rec, "file_close", func(c *fileCapsule) error {
		return c.file.Close(flags)
	})
}

// FileGetXMP returns a new Meta holding the file's metadata, or 0 with a
// clean record when the file has none. A document read while the error
// callback fired is dropped and 0 is returned.
func (b *Bridge) FileGetXMP(f File, rec *ErrorRecord) Meta {
	var m Meta
	ok := b.fileCall(f, rec, "file_get_xmp", func(c *fileCapsule) error {
		em, found, err := c.file.GetXMP()
		if err != nil || !found {
			return err
		}
		m, err = b.newMeta(em)
		return err
	})
	if !ok && m != 0 {
		b.MetaDrop(m)
		m = 0
	}
	return m
}

// FilePutXMP stages m to be written when f is closed.
func (b *Bridge) FilePutXMP(f File, rec *ErrorRecord, m Meta) bool {
	return b.fileCall(f, rec, "file_put_xmp", func(c *fileCapsule) error {
		em, err := b.meta("file_put_xmp", m)
		if err != nil {
			return err
		}
		return c.file.PutXMP(em)
	})
}

// FileCanPutXMP reports whether m could be written to f.
// It returns false on failure.
func (b *Bridge) FileCanPutXMP(f File, rec *ErrorRecord, m Meta) bool {
	var can bool
	ok := b.fileCall(f, rec, "file_can_put_xmp", func(c *fileCapsule) error {
		em, err := b.meta("file_can_put_xmp", m)
		if err != nil {
			return err
		}
		can, err = c.file.CanPutXMP(em)
		return err
	})
	return ok && can
}

// MetaFromFile reads the metadata of path without keeping the file open.
// A file without metadata is a failure here.
func (b *Bridge) MetaFromFile(rec *ErrorRecord, path string) Meta {
	if rec == nil {
		var scratch ErrorRecord
		rec = &scratch
		defer b.reset(rec)
	}

	f := b.FileNew(rec)
	if f == 0 {
		return 0
	}
	defer b.FileDrop(f)

	if !b.FileOpen(f, rec, path, engine.OpenForRead|engine.OpenOnlyXMP) {
		return 0
	}
	defer b.FileClose(f, nil, 0)

	m := b.FileGetXMP(f, rec)
	if m == 0 && rec.Clean() {
		b.populateKnown(rec, int32(errors.Unavailable), "No XMP in file")
	}
	return m
}
