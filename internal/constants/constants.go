package constants

import "time"

// Dialogue Skip Configuration (1920x1080 game resolution)
const (
	// Bottom dialogue option bounds (inclusive)
	OptionMinX = 1300
	OptionMaxX = 1700
	OptionMinY = 790
	OptionMaxY = 800

	// Autoplay icon, keyboard/mouse UI (white part of the button)
	KBMAutoplayIconX = 111
	KBMAutoplayIconY = 46

	// DualShock 4 square (pink) and cross (blue) legend pixels, English UI
	DS4EngAutoplayIconX = 1450
	DS4EngAutoplayIconY = 1010
	DS4EngConfirmIconX  = 1683
	DS4EngConfirmIconY  = 1013

	// Same legend pixels, Russian UI
	DS4RusAutoplayIconX = 1432
	DS4RusAutoplayIconY = 1010
	DS4RusConfirmIconX  = 1628
	DS4RusConfirmIconY  = 1013

	// Speech bubble in the bottom dialogue option
	KBMDialogueIconX = 1301
	KBMDialogueIconY = 808
	DS4DialogueIconX = 1300
	DS4DialogueIconY = 770

	// Near screen center, white only while the game is loading
	LoadingScreenX = 1200
	LoadingScreenY = 700
)

// Legend colors
var (
	DS4SquareColor    = [3]uint8{204, 114, 238}
	DS4CrossColor     = [3]uint8{56, 161, 229}
	KBMAutoplayColor  = [3]uint8{236, 229, 216}
	DialogueIconColor = [3]uint8{255, 255, 255}
	LoadingColor      = [3]uint8{255, 255, 255}
)

// Variant names
const (
	VariantDS4English = "ds4_eng"
	VariantDS4Russian = "ds4_rus"
	VariantKBM        = "kbm"
)

// Timing
const (
	PausePollInterval = 500 * time.Millisecond // Status re-check while paused
	IdleInterval      = 50 * time.Millisecond  // Sleep after a pass that injected nothing
	ClickPause        = 100 * time.Millisecond // Settle time after each mouse click

	ShortDelayMin = 120 * time.Millisecond
	ShortDelayMax = 180 * time.Millisecond
	LongDelayMin  = 180 * time.Millisecond
	LongDelayMax  = 300 * time.Millisecond
	LongDelayOdds = 6 // One roll out of a six-sided die picks the long delay

	RepositionFactor = 40 // Reposition interval = jitter delay * factor
)

// Hotkeys
const (
	HotkeyRun   = "f8"
	HotkeyPause = "f9"
	HotkeyQuit  = "f12"
)

// Logging
const (
	MaxLogLines = 100 // Lines kept in the UI log list
)
