package testbed

import (
	"sync/atomic"

	json "github.com/goccy/go-json"

	"github.com/wippyai/xmp-bridge/engine"
	"github.com/wippyai/xmp-bridge/errors"
)

// File is a handle on a path in the toolkit's in-memory store.
type File struct {
	tk       *Toolkit
	cb       engine.ErrorCallback
	limit    uint32
	sent     uint32
	path     string
	flags    engine.OpenFlags
	staged   []byte
	open     bool
	released atomic.Bool
}

var _ engine.File = (*File)(nil)

// Release implements engine.Releaser.
func (f *File) Release() {
	if f.released.CompareAndSwap(false, true) {
		f.tk.live.Add(-1)
	}
}

func (f *File) SetErrorCallback(cb engine.ErrorCallback, limit uint32) error {
	if err := f.tk.trip("SetErrorCallback"); err != nil {
		return err
	}
	f.cb = cb
	f.limit = limit
	return nil
}

// notify reports a problem through the callback. It returns true when
// the operation should go on. Without a callback the problem is raised.
func (f *File) notify(path string, severity engine.Severity, code errors.ErrorType, msg string) bool {
	if f.cb == nil {
		engine.Raise(int32(code), "%s", msg)
	}
	if f.limit != 0 && f.sent >= f.limit {
		return false
	}
	f.sent++
	return f.cb(path, severity, int32(code), msg)
}

// Open reports a missing path or an undecodable packet through the error
// callback and then refuses to open.
func (f *File) Open(path string, format uint32, flags engine.OpenFlags) (bool, error) {
	if err := f.tk.trip("Open"); err != nil {
		return false, err
	}
	if f.open {
		engine.Raise(int32(errors.BadParam), "File already open")
	}
	f.sent = 0

	data, ok := f.tk.FileData(path)
	if !ok {
		f.notify(path, engine.SeverityFileFatal, errors.NoFile, "File does not exist")
		return false, nil
	}
	if body := unwrap(data); len(body) > 0 && !json.Valid(body) {
		if !f.notify(path, engine.SeverityRecoverable, errors.BadXmp, "Invalid packet") {
			return false, nil
		}
	}

	f.path = path
	f.flags = flags
	f.open = true
	f.staged = nil
	return true, nil
}

// Close writes staged metadata back when the file was opened for update.
// Closing a file that is not open does nothing.
func (f *File) Close(flags engine.CloseFlags) error {
	if err := f.tk.trip("Close"); err != nil {
		return err
	}
	if !f.open {
		return nil
	}
	if f.staged != nil && f.flags&engine.OpenForUpdate != 0 {
		f.tk.AddFile(f.path, f.staged)
	}
	f.open = false
	f.staged = nil
	return nil
}

func (f *File) requireOpen() {
	if !f.open {
		engine.Raise(int32(errors.BadObject), "File not open")
	}
}

func (f *File) GetXMP() (engine.Meta, bool, error) {
	if err := f.tk.trip("GetXMP"); err != nil {
		return nil, false, err
	}
	f.requireOpen()
	data := f.staged
	if data == nil {
		data, _ = f.tk.FileData(f.path)
	}
	if len(unwrap(data)) == 0 || !json.Valid(unwrap(data)) {
		return nil, false, nil
	}
	m, err := f.tk.parse(data, 0)
	if err != nil {
		return nil, false, err
	}
	if m.Len() == 0 && m.name == "" {
		m.Release()
		return nil, false, nil
	}
	return m, true, nil
}

func (f *File) PutXMP(meta engine.Meta) error {
	if err := f.tk.trip("PutXMP"); err != nil {
		return err
	}
	f.requireOpen()
	if f.flags&engine.OpenForUpdate == 0 {
		engine.Raise(int32(errors.BadParam), "Can't put XMP: file not opened for update")
	}
	s, err := meta.Serialize(engine.SerializeUseCompactFormat, 0, "", "", 0)
	if err != nil {
		return err
	}
	f.staged = []byte(s)
	return nil
}

func (f *File) CanPutXMP(meta engine.Meta) (bool, error) {
	if err := f.tk.trip("CanPutXMP"); err != nil {
		return false, err
	}
	return f.open && f.flags&engine.OpenForUpdate != 0, nil
}
