package unqlite

import (
	"errors"
	"fmt"
)

// Status is a raw engine status code as returned by the native calls.
// The values mirror the UNQLITE_* constants of the C header.
type Status int32

const (
	StatusOK             Status = 0
	StatusNoMem          Status = -1
	StatusIOErr          Status = -2
	StatusEmpty          Status = -3
	StatusLocked         Status = -4
	StatusNotFound       Status = -6
	StatusLimit          Status = -7
	StatusInvalid        Status = -9
	StatusAbort          Status = -10
	StatusExists         Status = -11
	StatusUnknown        Status = -13
	StatusBusy           Status = -14
	StatusNotImplemented Status = -17
	StatusEOF            Status = -18
	StatusPerm           Status = -19
	StatusNoOp           Status = -20
	StatusCorrupt        Status = -24
	StatusDone           Status = -28
	StatusCompileErr     Status = -70
	StatusVMErr          Status = -71
	StatusFull           Status = -73
	StatusCantOpen       Status = -74
	StatusReadOnly       Status = -75
	StatusLockErr        Status = -76
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusNoMem:
		return "NOMEM"
	case StatusIOErr:
		return "IOERR"
	case StatusEmpty:
		return "EMPTY"
	case StatusLocked:
		return "LOCKED"
	case StatusNotFound:
		return "NOTFOUND"
	case StatusLimit:
		return "LIMIT"
	case StatusInvalid:
		return "INVALID"
	case StatusAbort:
		return "ABORT"
	case StatusExists:
		return "EXISTS"
	case StatusUnknown:
		return "UNKNOWN"
	case StatusBusy:
		return "BUSY"
	case StatusNotImplemented:
		return "NOTIMPLEMENTED"
	case StatusEOF:
		return "EOF"
	case StatusPerm:
		return "PERM"
	case StatusNoOp:
		return "NOOP"
	case StatusCorrupt:
		return "CORRUPT"
	case StatusDone:
		return "DONE"
	case StatusCompileErr:
		return "COMPILE_ERR"
	case StatusVMErr:
		return "VM_ERR"
	case StatusFull:
		return "FULL"
	case StatusCantOpen:
		return "CANTOPEN"
	case StatusReadOnly:
		return "READ_ONLY"
	case StatusLockErr:
		return "LOCKERR"
	}
	return fmt.Sprintf("Status(%d)", int32(s))
}

// EngineError reports a native call that the engine answered with a
// non-OK status code.
type EngineError struct {
	Op   string
	Code Status
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("unqlite: %s: %s (%d)", e.Op, e.Code, int32(e.Code))
}

var (
	ErrClosed        = errors.New("unqlite: engine is closed")
	ErrNulByteInPath = errors.New("unqlite: path contains an embedded NUL byte")
	ErrAllocation    = errors.New("unqlite: requested buffer length exceeds addressable memory")
	ErrMmapDisabled  = errors.New("unqlite: mmap support is experimental and not enabled")
)

// wrap adapts a raw engine status into a Go error. OK maps to nil, every
// other code surfaces as an *EngineError naming the native call.
func wrap(op string, s Status) error {
	if s == StatusOK {
		return nil
	}
	return &EngineError{Op: op, Code: s}
}
