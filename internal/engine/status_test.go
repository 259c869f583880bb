package engine

import "testing"

func TestStatusFlagStartsPaused(t *testing.T) {
	var f StatusFlag
	if got := f.Load(); got != StatusPause {
		t.Errorf("zero StatusFlag = %s, want pause", got)
	}
}

func TestStatusFlagTransitions(t *testing.T) {
	var f StatusFlag
	for _, s := range []Status{StatusRun, StatusPause, StatusRun} {
		if !f.Store(s) || f.Load() != s {
			t.Fatalf("Store(%s) did not stick, have %s", s, f.Load())
		}
	}
}

func TestStatusFlagExitIsTerminal(t *testing.T) {
	var f StatusFlag
	f.Store(StatusExit)
	if f.Store(StatusRun) {
		t.Error("Store(run) after exit reported success")
	}
	if f.Load() != StatusExit {
		t.Errorf("status = %s after exit, want exit", f.Load())
	}
	if !f.Store(StatusExit) {
		t.Error("Store(exit) after exit should be a no-op success")
	}
}
