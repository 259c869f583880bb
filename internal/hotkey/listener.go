// Package hotkey maps global key presses to bot status changes.
package hotkey

import (
	"context"
	"fmt"
	"strings"

	hook "github.com/robotn/gohook"

	"github.com/ConserveLee/dialogue-skip/internal/engine"
)

// Bindings names the key for each status, using gohook key names.
type Bindings struct {
	Run   string
	Pause string
	Quit  string
}

// Banner is the startup help text.
func (b Bindings) Banner() string {
	return fmt.Sprintf("%s to start, %s to stop, %s to quit", strings.ToUpper(b.Run), strings.ToUpper(b.Pause), strings.ToUpper(b.Quit))
}

// Listener applies hotkeys to a StatusFlag.
type Listener struct {
	bindings Bindings
	status   *engine.StatusFlag
	logFunc  func(string)
	quit     func()

	// gohook lifecycle, replaced in tests
	start   func() chan hook.Event
	end     func()
	process func(<-chan hook.Event) chan bool
}

// NewListener validates the key names. quit runs after the quit key stored StatusExit.
func NewListener(b Bindings, status *engine.StatusFlag, logFunc func(string), quit func()) (*Listener, error) {
	for _, key := range []string{b.Run, b.Pause, b.Quit} {
		if _, ok := hook.Keycode[key]; !ok {
			return nil, fmt.Errorf("unknown hotkey %q", key)
		}
	}
	return &Listener{
		bindings: b,
		status:   status,
		logFunc:  logFunc,
		quit:     quit,
		start:    hook.Start,
		end:      hook.End,
		process:  hook.Process,
	}, nil
}

// Apply performs the transition for target, as if its key was pressed.
func (l *Listener) Apply(target engine.Status) {
	switch target {
	case engine.StatusRun:
		if l.status.Store(engine.StatusRun) {
			l.logFunc("RUNNING")
		}
	case engine.StatusPause:
		if l.status.Store(engine.StatusPause) {
			l.logFunc("PAUSED")
		}
	case engine.StatusExit:
		l.status.Store(engine.StatusExit)
		l.logFunc("QUIT")
		if l.quit != nil {
			l.quit()
		}
	}
}

// Run listens for global key presses until ctx is done.
func (l *Listener) Run(ctx context.Context) {
	hook.Register(hook.KeyDown, []string{l.bindings.Run}, func(hook.Event) { l.Apply(engine.StatusRun) })
	hook.Register(hook.KeyDown, []string{l.bindings.Pause}, func(hook.Event) { l.Apply(engine.StatusPause) })
	hook.Register(hook.KeyDown, []string{l.bindings.Quit}, func(hook.Event) { l.Apply(engine.StatusExit) })

	s := l.start()
	done := l.process(s)

	<-ctx.Done()
	l.end()
	// Process reports once the event stream is closed.
	<-done
}
