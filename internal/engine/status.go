package engine

import "sync/atomic"

// Status is the run state shared by the hotkey listener and the bot loop.
type Status int32

const (
	StatusPause Status = iota // initial
	StatusRun
	StatusExit // terminal
)

func (s Status) String() string {
	switch s {
	case StatusPause:
		return "pause"
	case StatusRun:
		return "run"
	case StatusExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Label is the text shown in the status line.
func (s Status) Label() string {
	switch s {
	case StatusPause:
		return "Status: Paused"
	case StatusRun:
		return "Status: Running"
	case StatusExit:
		return "Status: Exiting"
	default:
		return "Status: Unknown"
	}
}

// StatusFlag is a lock-free, latest-value-wins Status. The zero value is StatusPause.
type StatusFlag struct {
	v atomic.Int32
}

// Load returns the current status.
func (f *StatusFlag) Load() Status {
	return Status(f.v.Load())
}

// Store sets s unless the flag already holds StatusExit. It reports whether s was stored.
func (f *StatusFlag) Store(s Status) bool {
	for {
		cur := f.v.Load()
		if Status(cur) == StatusExit {
			return s == StatusExit
		}
		if f.v.CompareAndSwap(cur, int32(s)) {
			return true
		}
	}
}
