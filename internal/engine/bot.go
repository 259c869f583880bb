package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/ConserveLee/dialogue-skip/internal/constants"
	"github.com/ConserveLee/dialogue-skip/internal/engine/detect"
	"github.com/ConserveLee/dialogue-skip/internal/engine/input"
)

// FrameSource captures a display-local region of the screen.
type FrameSource interface {
	Capture(region image.Rectangle) (image.Image, error)
}

// Pointer moves and clicks the mouse.
type Pointer interface {
	Move(x, y int)
	Click()
}

// BotConfig holds the detection table and pacing for the automation
type BotConfig struct {
	Variants         []detect.Variant
	Dialogue         detect.DialogueRule
	OptionRegion     image.Rectangle // Bottom dialogue option, half-open
	PausePoll        time.Duration   // Status re-check interval while paused
	Idle             time.Duration   // Sleep after a pass that injected nothing, 0 disables
	ClickPause       time.Duration   // Pause after each click
	Jitter           JitterConfig
	RepositionFactor int
}

// Devices are the bot's collaborators.
type Devices struct {
	Frames  FrameSource
	Pointer Pointer
	Gamepad input.Gamepad
}

// errExit aborts an action sequence once the exit hotkey has been seen.
var errExit = errors.New("exit requested")

// Bot skips dialogue while its Status is StatusRun
type Bot struct {
	Config BotConfig
	Status *StatusFlag

	// Callbacks for UI updates
	LogFunc    func(string)                 // For persistent logs (History)
	StatusFunc func(string)                 // For transient status (Label)
	DebugFunc  func(string, ...interface{}) // For console debug

	frames  FrameSource
	pointer Pointer
	gamepad input.Gamepad
	jitter  *Jitter
	region  image.Rectangle // Capture area covering every probe

	now   func() time.Time
	sleep func(context.Context, time.Duration) error

	lastReposition     time.Time
	repositionInterval time.Duration
	lastObservation    detect.Observation
	actions            int
}

// NewBot creates a paused bot
func NewBot(cfg BotConfig, dev Devices, status *StatusFlag, logFunc func(string), statusFunc func(string), debugFunc func(string, ...interface{})) *Bot {
	if cfg.RepositionFactor < 1 {
		cfg.RepositionFactor = constants.RepositionFactor
	}
	b := &Bot{
		Config:     cfg,
		Status:     status,
		LogFunc:    logFunc,
		StatusFunc: statusFunc,
		DebugFunc:  debugFunc,
		frames:     dev.Frames,
		pointer:    dev.Pointer,
		gamepad:    dev.Gamepad,
		jitter:     NewJitter(cfg.Jitter),
		region:     detect.Region(cfg.Variants, cfg.Dialogue),
		now:        time.Now,
		sleep:      sleepContext,
	}
	b.repositionInterval = b.nextRepositionInterval()
	return b
}

// Run is the main control loop. It returns nil on exit or when ctx is
// canceled, and the first capture or injection error otherwise.
func (b *Bot) Run(ctx context.Context) error {
	reported := Status(-1)

	for {
		status := b.Status.Load()
		if ctx.Err() != nil {
			status = StatusExit
		}
		if status != reported {
			b.StatusFunc(status.Label())
			b.DebugFunc("[Loop] status -> %s", status)
			reported = status
		}

		switch status {
		case StatusExit:
			b.LogFunc(fmt.Sprintf("Main program closing (%d actions)", b.actions))
			return nil
		case StatusPause:
			b.sleep(ctx, b.Config.PausePoll)
			continue
		}

		acted, err := b.pass(ctx)
		if err != nil {
			if errors.Is(err, errExit) || ctx.Err() != nil {
				continue
			}
			b.StatusFunc("Status: Error")
			return err
		}
		if !acted && b.Config.Idle > 0 {
			b.sleep(ctx, b.Config.Idle)
		}
	}
}

// pass runs one classify-and-dispatch cycle. Every variant's branch is
// evaluated on its own: an active dialogue fires all of them, so a gamepad
// confirm and a mouse click can both happen in the same pass. The screen is
// sampled again after each branch that injected input.
func (b *Bot) pass(ctx context.Context) (bool, error) {
	obs, err := b.observe()
	if err != nil {
		return false, err
	}

	acted := false
	for _, v := range b.Config.Variants {
		if b.Status.Load() != StatusRun {
			return acted, nil
		}
		if obs.Variant.Name != v.Name && !obs.Dialogue {
			continue
		}

		switch v.Device {
		case detect.DeviceGamepad:
			err = b.advanceWithGamepad(ctx, obs.Dialogue)
		case detect.DeviceKeyboardMouse:
			err = b.advanceWithPointer(ctx)
		default:
			continue
		}
		b.actions++
		acted = true
		if err != nil {
			return acted, err
		}

		if obs, err = b.observe(); err != nil {
			return acted, err
		}
	}
	return acted, nil
}

func (b *Bot) observe() (detect.Observation, error) {
	frame, err := b.frames.Capture(b.region)
	if err != nil {
		return detect.Observation{}, err
	}
	obs := detect.Observe(frame, b.Config.Variants, b.Config.Dialogue)
	if obs.Variant.Name != b.lastObservation.Variant.Name || obs.Dialogue != b.lastObservation.Dialogue {
		name := obs.Variant.Name
		if obs.Variant.IsNone() {
			name = "none"
		}
		b.DebugFunc("[Detect] ui=%s dialogue=%v", name, obs.Dialogue)
		b.lastObservation = obs
	}
	return obs, nil
}

// advanceWithGamepad selects the last option when a choice is on screen, then confirms.
func (b *Bot) advanceWithGamepad(ctx context.Context, dialogue bool) error {
	if dialogue {
		if err := b.selectLastOption(ctx); err != nil {
			return err
		}
	}
	return b.pressConfirm(ctx)
}

// selectLastOption taps D-pad up, which wraps the selection to the bottom option.
func (b *Bot) selectLastOption(ctx context.Context) error {
	b.gamepad.SetDPad(input.DPadNorth)
	if err := b.gamepad.Update(); err != nil {
		return fmt.Errorf("gamepad dpad press: %w", err)
	}
	if err := b.wait(ctx); err != nil {
		return err
	}
	b.gamepad.Reset()
	if err := b.gamepad.Update(); err != nil {
		return fmt.Errorf("gamepad dpad release: %w", err)
	}
	return b.wait(ctx)
}

func (b *Bot) pressConfirm(ctx context.Context) error {
	b.gamepad.PressButton(input.ButtonCross)
	if err := b.gamepad.Update(); err != nil {
		return fmt.Errorf("gamepad cross press: %w", err)
	}
	if err := b.wait(ctx); err != nil {
		return err
	}
	b.gamepad.ReleaseButton(input.ButtonCross)
	if err := b.gamepad.Update(); err != nil {
		return fmt.Errorf("gamepad cross release: %w", err)
	}
	return b.wait(ctx)
}

// advanceWithPointer moves to a fresh spot on the bottom option when the
// reposition timer has elapsed, then clicks.
func (b *Bot) advanceWithPointer(ctx context.Context) error {
	now := b.now()
	if now.Sub(b.lastReposition) > b.repositionInterval {
		b.lastReposition = now
		b.repositionInterval = b.nextRepositionInterval()
		p := b.jitter.PointIn(b.Config.OptionRegion)
		b.pointer.Move(p.X, p.Y)
		b.DebugFunc("[Pointer] moved to (%d, %d), next move in %s", p.X, p.Y, b.repositionInterval)
	}
	b.pointer.Click()
	return b.sleep(ctx, b.Config.ClickPause)
}

func (b *Bot) nextRepositionInterval() time.Duration {
	return b.jitter.Delay() * time.Duration(b.Config.RepositionFactor)
}

// wait sleeps for a jittered delay and aborts the sequence on exit.
func (b *Bot) wait(ctx context.Context) error {
	if err := b.sleep(ctx, b.jitter.Delay()); err != nil {
		return err
	}
	if b.Status.Load() == StatusExit {
		return errExit
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
