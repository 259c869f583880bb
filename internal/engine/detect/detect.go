// Package detect classifies the game UI from a handful of fixed-position pixel probes.
//
// Colors must match exactly. The default table is calibrated for a 1920x1080
// game window in the English and Russian localizations; other resolutions or
// themes are supported by adding rows to the table, not code.
package detect

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Device is the input device a UI legend variant expects.
type Device int

const (
	DeviceNone Device = iota
	DeviceGamepad
	DeviceKeyboardMouse
)

func (d Device) String() string {
	switch d {
	case DeviceGamepad:
		return "gamepad"
	case DeviceKeyboardMouse:
		return "kbm"
	default:
		return "none"
	}
}

// ParseDevice parses the config spelling of a device.
func ParseDevice(s string) (Device, error) {
	switch s {
	case "gamepad":
		return DeviceGamepad, nil
	case "kbm":
		return DeviceKeyboardMouse, nil
	default:
		return DeviceNone, fmt.Errorf("unknown device %q (want gamepad or kbm)", s)
	}
}

// RGB is an 8-bit color sample.
type RGB struct {
	R, G, B uint8
}

// White is the dialogue icon and loading screen color.
var White = RGB{R: 255, G: 255, B: 255}

func (c RGB) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

// Probe is a screen position and the color expected there.
type Probe struct {
	Point image.Point
	Color RGB
}

// Variant is a UI legend variant. It matches when every probe matches.
type Variant struct {
	Name   string
	Device Device
	Probes []Probe
}

// IsNone reports whether v is the zero "nothing matched" result.
func (v Variant) IsNone() bool {
	return v.Name == ""
}

// DialogueRule describes the dialogue icon check. Loading suppresses a match
// while the loading screen shows the same color at the icon position.
type DialogueRule struct {
	Icons        []image.Point
	Loading      image.Point
	IconColor    RGB
	LoadingColor RGB
}

// PixelAt returns the 8-bit color of frame at (x, y). Points outside the frame read as black.
func PixelAt(frame image.Image, x, y int) RGB {
	if !image.Pt(x, y).In(frame.Bounds()) {
		return RGB{}
	}
	c := color.RGBAModel.Convert(frame.At(x, y)).(color.RGBA)
	return RGB{R: c.R, G: c.G, B: c.B}
}

// Matches reports whether the probe's color is present in frame.
func (p Probe) Matches(frame image.Image) bool {
	return PixelAt(frame, p.Point.X, p.Point.Y) == p.Color
}

// Matches reports whether all probes of v match frame.
func (v Variant) Matches(frame image.Image) bool {
	if len(v.Probes) == 0 {
		return false
	}
	for _, p := range v.Probes {
		if !p.Matches(frame) {
			return false
		}
	}
	return true
}

// Classify returns the first variant that matches frame, or the zero Variant.
func Classify(frame image.Image, variants []Variant) Variant {
	for _, v := range variants {
		if v.Matches(frame) {
			return v
		}
	}
	return Variant{}
}

// IsDialogueActive reports whether any dialogue icon shows while the loading
// reference pixel does not.
func IsDialogueActive(frame image.Image, rule DialogueRule) bool {
	if PixelAt(frame, rule.Loading.X, rule.Loading.Y) == rule.LoadingColor {
		return false
	}
	for _, p := range rule.Icons {
		if PixelAt(frame, p.X, p.Y) == rule.IconColor {
			return true
		}
	}
	return false
}

// Region returns the smallest rectangle covering every probe point.
func Region(variants []Variant, rule DialogueRule) image.Rectangle {
	var r image.Rectangle
	add := func(p image.Point) {
		r = r.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))
	}
	for _, v := range variants {
		for _, p := range v.Probes {
			add(p.Point)
		}
	}
	for _, p := range rule.Icons {
		add(p)
	}
	add(rule.Loading)
	return r
}

// Observation is one classification of a frame.
type Observation struct {
	Variant  Variant
	Dialogue bool
}

// String describes the observation in one line.
func (o Observation) String() string {
	ui := "none"
	if !o.Variant.IsNone() {
		ui = fmt.Sprintf("%s (%s)", o.Variant.Name, o.Variant.Device)
	}
	return fmt.Sprintf("UI: %s | Dialogue: %v", ui, o.Dialogue)
}

// Observe classifies frame and checks for dialogue in one call.
func Observe(frame image.Image, variants []Variant, rule DialogueRule) Observation {
	return Observation{
		Variant:  Classify(frame, variants),
		Dialogue: IsDialogueActive(frame, rule),
	}
}

// Reading is a probe and the color sampled at it.
type Reading struct {
	Label string
	Probe Probe
	Got   RGB
}

// OK reports whether the sampled color equals the expected one.
func (r Reading) OK() bool {
	return r.Got == r.Probe.Color
}

// Readings samples every probe in the table, for inspection tools.
func Readings(frame image.Image, variants []Variant, rule DialogueRule) []Reading {
	var out []Reading
	for _, v := range variants {
		for i, p := range v.Probes {
			out = append(out, Reading{
				Label: fmt.Sprintf("%s[%d]", v.Name, i),
				Probe: p,
				Got:   PixelAt(frame, p.Point.X, p.Point.Y),
			})
		}
	}
	for i, p := range rule.Icons {
		out = append(out, Reading{
			Label: fmt.Sprintf("dialogue_icon[%d]", i),
			Probe: Probe{Point: p, Color: rule.IconColor},
			Got:   PixelAt(frame, p.X, p.Y),
		})
	}
	out = append(out, Reading{
		Label: "loading_screen",
		Probe: Probe{Point: rule.Loading, Color: rule.LoadingColor},
		Got:   PixelAt(frame, rule.Loading.X, rule.Loading.Y),
	})
	return out
}

// FormatReadings renders one line per probe: label, position, expected, got.
func FormatReadings(readings []Reading) string {
	var sb strings.Builder
	for _, r := range readings {
		mark := "  "
		if r.OK() {
			mark = "OK"
		}
		fmt.Fprintf(&sb, "%s %-18s (%4d,%4d) want %-16s got %s\n",
			mark, r.Label, r.Probe.Point.X, r.Probe.Point.Y, r.Probe.Color, r.Got)
	}
	return sb.String()
}
