package config

import (
	"errors"
	"fmt"
	"image"

	"github.com/ConserveLee/dialogue-skip/internal/constants"
	"github.com/ConserveLee/dialogue-skip/internal/engine/detect"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config is the root configuration.
type Config struct {
	Display  DisplayConfig   `toml:"display"`
	Hotkeys  HotkeyConfig    `toml:"hotkeys"`
	Timing   TimingConfig    `toml:"timing"`
	Gamepad  GamepadConfig   `toml:"gamepad"`
	Option   RegionConfig    `toml:"option_region"`
	Variants []VariantConfig `toml:"variants"`
	Dialogue DialogueConfig  `toml:"dialogue"`
}

// DisplayConfig selects the monitor to sample and click on.
type DisplayConfig struct {
	Index int `toml:"index"`
}

// HotkeyConfig names the global keys, using gohook key names ("f8").
type HotkeyConfig struct {
	Run   string `toml:"run"`
	Pause string `toml:"pause"`
	Quit  string `toml:"quit"`
}

// TimingConfig holds the pacing of the control loop and injected input.
type TimingConfig struct {
	PausePoll        Duration `toml:"pause_poll"`
	Idle             Duration `toml:"idle"`
	ShortMin         Duration `toml:"short_min"`
	ShortMax         Duration `toml:"short_max"`
	LongMin          Duration `toml:"long_min"`
	LongMax          Duration `toml:"long_max"`
	LongOdds         int      `toml:"long_odds"`
	RepositionFactor int      `toml:"reposition_factor"`
}

// GamepadConfig toggles the virtual DualShock 4.
type GamepadConfig struct {
	Enabled bool `toml:"enabled"`
}

// RegionConfig is an inclusive rectangle in display coordinates.
type RegionConfig struct {
	MinX int `toml:"min_x"`
	MaxX int `toml:"max_x"`
	MinY int `toml:"min_y"`
	MaxY int `toml:"max_y"`
}

// VariantConfig describes one UI legend variant.
type VariantConfig struct {
	Name   string        `toml:"name"`
	Device string        `toml:"device"` // "gamepad" or "kbm"
	Probes []ProbeConfig `toml:"probes"`
}

// ProbeConfig is a pixel position and its expected color.
type ProbeConfig struct {
	X     int      `toml:"x"`
	Y     int      `toml:"y"`
	Color [3]uint8 `toml:"color"`
}

// DialogueConfig describes the dialogue icon check and its loading-screen guard.
type DialogueConfig struct {
	Icons        [][2]int `toml:"icons"`
	Loading      [2]int   `toml:"loading"`
	IconColor    [3]uint8 `toml:"icon_color"`
	LoadingColor [3]uint8 `toml:"loading_color"`
}

// Validate checks the config for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Display.Index < 0 {
		return fmt.Errorf("%w: display index %d", ErrInvalid, c.Display.Index)
	}

	keys := map[string]string{}
	for _, hk := range []struct{ role, key string }{
		{"run", c.Hotkeys.Run},
		{"pause", c.Hotkeys.Pause},
		{"quit", c.Hotkeys.Quit},
	} {
		role, key := hk.role, hk.key
		if key == "" {
			return fmt.Errorf("%w: %s hotkey is empty", ErrInvalid, role)
		}
		if other, dup := keys[key]; dup {
			return fmt.Errorf("%w: hotkey %q bound to both %s and %s", ErrInvalid, key, other, role)
		}
		keys[key] = role
	}

	t := c.Timing
	if t.PausePoll.Duration <= 0 {
		return fmt.Errorf("%w: pause_poll must be positive", ErrInvalid)
	}
	if t.ShortMin.Duration <= 0 || t.ShortMax.Duration < t.ShortMin.Duration {
		return fmt.Errorf("%w: short delay range %s..%s", ErrInvalid, t.ShortMin, t.ShortMax)
	}
	if t.LongMin.Duration <= 0 || t.LongMax.Duration < t.LongMin.Duration {
		return fmt.Errorf("%w: long delay range %s..%s", ErrInvalid, t.LongMin, t.LongMax)
	}
	if t.LongOdds < 1 {
		return fmt.Errorf("%w: long_odds must be at least 1", ErrInvalid)
	}
	if t.RepositionFactor < 1 {
		return fmt.Errorf("%w: reposition_factor must be at least 1", ErrInvalid)
	}

	if c.Option.MaxX < c.Option.MinX || c.Option.MaxY < c.Option.MinY {
		return fmt.Errorf("%w: option region is empty", ErrInvalid)
	}

	if len(c.Variants) == 0 {
		return fmt.Errorf("%w: no UI variants", ErrInvalid)
	}
	names := map[string]bool{}
	for _, v := range c.Variants {
		if v.Name == "" {
			return fmt.Errorf("%w: variant without a name", ErrInvalid)
		}
		if names[v.Name] {
			return fmt.Errorf("%w: duplicate variant %q", ErrInvalid, v.Name)
		}
		names[v.Name] = true
		if _, err := detect.ParseDevice(v.Device); err != nil {
			return fmt.Errorf("%w: variant %q: %v", ErrInvalid, v.Name, err)
		}
		if len(v.Probes) == 0 {
			return fmt.Errorf("%w: variant %q has no probes", ErrInvalid, v.Name)
		}
	}

	if len(c.Dialogue.Icons) == 0 {
		return fmt.Errorf("%w: no dialogue icon positions", ErrInvalid)
	}
	return nil
}

// DetectVariants converts the variant table for the detector. Call after Validate.
func (c *Config) DetectVariants() []detect.Variant {
	variants := make([]detect.Variant, 0, len(c.Variants))
	for _, v := range c.Variants {
		device, _ := detect.ParseDevice(v.Device)
		probes := make([]detect.Probe, 0, len(v.Probes))
		for _, p := range v.Probes {
			probes = append(probes, detect.Probe{
				Point: image.Pt(p.X, p.Y),
				Color: detect.RGB{R: p.Color[0], G: p.Color[1], B: p.Color[2]},
			})
		}
		variants = append(variants, detect.Variant{Name: v.Name, Device: device, Probes: probes})
	}
	return variants
}

// DialogueRule converts the dialogue check for the detector.
func (c *Config) DialogueRule() detect.DialogueRule {
	icons := make([]image.Point, 0, len(c.Dialogue.Icons))
	for _, p := range c.Dialogue.Icons {
		icons = append(icons, image.Pt(p[0], p[1]))
	}
	d := c.Dialogue
	return detect.DialogueRule{
		Icons:        icons,
		Loading:      image.Pt(d.Loading[0], d.Loading[1]),
		IconColor:    detect.RGB{R: d.IconColor[0], G: d.IconColor[1], B: d.IconColor[2]},
		LoadingColor: detect.RGB{R: d.LoadingColor[0], G: d.LoadingColor[1], B: d.LoadingColor[2]},
	}
}

// OptionRegion returns the bottom dialogue option as a half-open rectangle.
func (c *Config) OptionRegion() image.Rectangle {
	return image.Rect(c.Option.MinX, c.Option.MinY, c.Option.MaxX+1, c.Option.MaxY+1)
}

// HotkeyNames returns the run, pause and quit keys.
func (c *Config) HotkeyNames() (run, pause, quit string) {
	return c.Hotkeys.Run, c.Hotkeys.Pause, c.Hotkeys.Quit
}

// defaultVariants mirrors the calibrated 1920x1080 legend probes.
func defaultVariants() []VariantConfig {
	return []VariantConfig{
		{
			Name:   constants.VariantDS4English,
			Device: detect.DeviceGamepad.String(),
			Probes: []ProbeConfig{
				{X: constants.DS4EngAutoplayIconX, Y: constants.DS4EngAutoplayIconY, Color: constants.DS4SquareColor},
				{X: constants.DS4EngConfirmIconX, Y: constants.DS4EngConfirmIconY, Color: constants.DS4CrossColor},
			},
		},
		{
			Name:   constants.VariantDS4Russian,
			Device: detect.DeviceGamepad.String(),
			Probes: []ProbeConfig{
				{X: constants.DS4RusAutoplayIconX, Y: constants.DS4RusAutoplayIconY, Color: constants.DS4SquareColor},
				{X: constants.DS4RusConfirmIconX, Y: constants.DS4RusConfirmIconY, Color: constants.DS4CrossColor},
			},
		},
		{
			Name:   constants.VariantKBM,
			Device: detect.DeviceKeyboardMouse.String(),
			Probes: []ProbeConfig{
				{X: constants.KBMAutoplayIconX, Y: constants.KBMAutoplayIconY, Color: constants.KBMAutoplayColor},
			},
		},
	}
}
