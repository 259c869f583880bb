// Package input injects pointer and virtual gamepad input.
package input

import (
	"image"

	"github.com/go-vgo/robotgo"
)

// Pointer moves and clicks the system mouse.
type Pointer struct {
	offset image.Point
}

// NewPointer creates a pointer on the main display.
func NewPointer() *Pointer {
	return &Pointer{}
}

// SetDisplayID makes Move coordinates relative to display id.
func (p *Pointer) SetDisplayID(id int) {
	x, y, _, _ := robotgo.GetDisplayBounds(id)
	p.offset = image.Pt(x, y)
}

// Move places the cursor at display-local (x, y).
func (p *Pointer) Move(x, y int) {
	robotgo.Move(p.offset.X+x, p.offset.Y+y)
}

// Click left-clicks at the current cursor position.
func (p *Pointer) Click() {
	robotgo.Click("left")
}
