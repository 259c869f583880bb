package input

import (
	"testing"
	"unsafe"
)

func TestReportLayoutMatchesViGEm(t *testing.T) {
	// DS4_REPORT: 4 thumb bytes, USHORT buttons, special, two triggers.
	if got := unsafe.Sizeof(DS4Report{}); got != 10 {
		t.Errorf("sizeof(DS4Report) = %d, want 10", got)
	}
	if got := unsafe.Offsetof(DS4Report{}.Buttons); got != 4 {
		t.Errorf("offsetof(Buttons) = %d, want 4", got)
	}
}

func TestNeutralReport(t *testing.T) {
	r := NeutralReport()
	if r.DPad() != DPadNone {
		t.Errorf("DPad() = %d, want none", r.DPad())
	}
	if r.ThumbLX != 0x80 || r.ThumbRY != 0x80 {
		t.Error("sticks should be centered")
	}
	if r.Pressed(ButtonCross) {
		t.Error("cross should not be pressed")
	}
}

func TestReportStateButtonsAndDPad(t *testing.T) {
	g := NewNopGamepad()

	g.SetDPad(DPadNorth)
	g.PressButton(ButtonCross)
	if g.report.DPad() != DPadNorth {
		t.Errorf("DPad() = %d, want north", g.report.DPad())
	}
	if !g.report.Pressed(ButtonCross) {
		t.Error("cross should be pressed")
	}

	// Changing the hat leaves buttons alone.
	g.SetDPad(DPadSouthWest)
	if !g.report.Pressed(ButtonCross) || g.report.DPad() != DPadSouthWest {
		t.Errorf("buttons = %#04x after hat change", g.report.Buttons)
	}

	g.ReleaseButton(ButtonCross)
	if g.report.Pressed(ButtonCross) {
		t.Error("cross should be released")
	}

	g.PressButton(ButtonSquare)
	g.Reset()
	if g.report != NeutralReport() {
		t.Errorf("Reset() left %+v", g.report)
	}
	if err := g.Update(); err != nil {
		t.Errorf("Update() = %v", err)
	}
}
