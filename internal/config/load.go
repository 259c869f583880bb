package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ConserveLee/dialogue-skip/internal/constants"
)

// AppName is the directory name under the user config dir.
const AppName = "dialogue-skip"

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/dialogue-skip/config.toml
//  2. <os.UserConfigDir>/dialogue-skip/config.toml
//
// If no file exists, returns DefaultConfig().
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	return DefaultConfig(), nil
}

// LoadFromFile reads configuration from a specific file path.
// A missing file is an error.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader reads configuration from an io.Reader on top of the defaults.
// A [[variants]] table in the input replaces the default variant table.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Variants = nil
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	if len(cfg.Variants) == 0 {
		cfg.Variants = defaultVariants()
	}
	return cfg, nil
}

// DefaultConfig returns the calibrated 1920x1080 configuration.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{Index: 0},
		Hotkeys: HotkeyConfig{
			Run:   constants.HotkeyRun,
			Pause: constants.HotkeyPause,
			Quit:  constants.HotkeyQuit,
		},
		Timing: TimingConfig{
			PausePoll:        Duration{constants.PausePollInterval},
			Idle:             Duration{constants.IdleInterval},
			ShortMin:         Duration{constants.ShortDelayMin},
			ShortMax:         Duration{constants.ShortDelayMax},
			LongMin:          Duration{constants.LongDelayMin},
			LongMax:          Duration{constants.LongDelayMax},
			LongOdds:         constants.LongDelayOdds,
			RepositionFactor: constants.RepositionFactor,
		},
		Gamepad: GamepadConfig{Enabled: true},
		Option: RegionConfig{
			MinX: constants.OptionMinX,
			MaxX: constants.OptionMaxX,
			MinY: constants.OptionMinY,
			MaxY: constants.OptionMaxY,
		},
		Variants: defaultVariants(),
		Dialogue: DialogueConfig{
			Icons: [][2]int{
				{constants.DS4DialogueIconX, constants.DS4DialogueIconY},
				{constants.KBMDialogueIconX, constants.KBMDialogueIconY},
			},
			Loading:      [2]int{constants.LoadingScreenX, constants.LoadingScreenY},
			IconColor:    constants.DialogueIconColor,
			LoadingColor: constants.LoadingColor,
		},
	}
}

func configSearchPaths() []string {
	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, AppName, "config.toml"))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, AppName, "config.toml"))
	}
	return paths
}
