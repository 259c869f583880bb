package input

import "errors"

// ErrGamepadUnsupported is returned where no virtual gamepad driver exists.
var ErrGamepadUnsupported = errors.New("virtual gamepad requires Windows with the ViGEmBus driver")

// Gamepad is a virtual controller. State changes are buffered until Update.
type Gamepad interface {
	SetDPad(d DPad)
	PressButton(b Button)
	ReleaseButton(b Button)
	Reset()
	Update() error
	Close() error
}

// DPad is a DualShock 4 hat switch direction.
type DPad uint16

const (
	DPadNorth DPad = iota
	DPadNorthEast
	DPadEast
	DPadSouthEast
	DPadSouth
	DPadSouthWest
	DPadWest
	DPadNorthWest
	DPadNone
)

// Button is a DualShock 4 button bit.
type Button uint16

const (
	ButtonSquare        Button = 1 << 4
	ButtonCross         Button = 1 << 5
	ButtonCircle        Button = 1 << 6
	ButtonTriangle      Button = 1 << 7
	ButtonShoulderLeft  Button = 1 << 8
	ButtonShoulderRight Button = 1 << 9
	ButtonTriggerLeft   Button = 1 << 10
	ButtonTriggerRight  Button = 1 << 11
	ButtonShare         Button = 1 << 12
	ButtonOptions       Button = 1 << 13
	ButtonThumbLeft     Button = 1 << 14
	ButtonThumbRight    Button = 1 << 15
)

const dpadMask = 0x000F

// DS4Report is the wire layout of ViGEm's DS4_REPORT.
type DS4Report struct {
	ThumbLX  uint8
	ThumbLY  uint8
	ThumbRX  uint8
	ThumbRY  uint8
	Buttons  uint16
	Special  uint8
	TriggerL uint8
	TriggerR uint8
}

// NeutralReport has centered sticks, no buttons and a released hat.
func NeutralReport() DS4Report {
	return DS4Report{
		ThumbLX: 0x80,
		ThumbLY: 0x80,
		ThumbRX: 0x80,
		ThumbRY: 0x80,
		Buttons: uint16(DPadNone),
	}
}

// DPad returns the hat direction encoded in r.
func (r DS4Report) DPad() DPad {
	return DPad(r.Buttons & dpadMask)
}

// Pressed reports whether b is held in r.
func (r DS4Report) Pressed(b Button) bool {
	return r.Buttons&uint16(b) != 0
}

// reportState implements the buffered half of Gamepad.
type reportState struct {
	report DS4Report
}

func (s *reportState) SetDPad(d DPad) {
	s.report.Buttons = s.report.Buttons&^dpadMask | uint16(d)&dpadMask
}

func (s *reportState) PressButton(b Button) {
	s.report.Buttons |= uint16(b)
}

func (s *reportState) ReleaseButton(b Button) {
	s.report.Buttons &^= uint16(b)
}

func (s *reportState) Reset() {
	s.report = NeutralReport()
}

// NopGamepad accepts every call and sends nothing.
type NopGamepad struct {
	reportState
}

// NewNopGamepad returns a gamepad for setups without a virtual controller.
func NewNopGamepad() *NopGamepad {
	g := &NopGamepad{}
	g.Reset()
	return g
}

func (g *NopGamepad) Update() error { return nil }
func (g *NopGamepad) Close() error  { return nil }
