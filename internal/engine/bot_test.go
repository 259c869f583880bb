package engine

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/ConserveLee/dialogue-skip/internal/config"
	"github.com/ConserveLee/dialogue-skip/internal/engine/input"
)

// --- fakes ---

type recorder struct {
	events []string
	moves  []image.Point
}

func (r *recorder) add(e string) { r.events = append(r.events, e) }

type fakePointer struct{ rec *recorder }

func (p *fakePointer) Move(x, y int) {
	p.rec.add("move")
	p.rec.moves = append(p.rec.moves, image.Pt(x, y))
}

func (p *fakePointer) Click() { p.rec.add("click") }

type fakeGamepad struct {
	rec *recorder
	err error
}

func (g *fakeGamepad) SetDPad(d input.DPad) {
	if d == input.DPadNorth {
		g.rec.add("dpad up")
		return
	}
	g.rec.add("dpad other")
}

func (g *fakeGamepad) PressButton(b input.Button) {
	if b == input.ButtonCross {
		g.rec.add("press cross")
		return
	}
	g.rec.add("press other")
}

func (g *fakeGamepad) ReleaseButton(b input.Button) {
	if b == input.ButtonCross {
		g.rec.add("release cross")
		return
	}
	g.rec.add("release other")
}

func (g *fakeGamepad) Reset() { g.rec.add("reset") }

func (g *fakeGamepad) Update() error {
	g.rec.add("update")
	return g.err
}

func (g *fakeGamepad) Close() error { return nil }

type fakeFrames struct {
	frame     image.Image
	err       error
	captures  int
	onCapture func(n int)
}

func (f *fakeFrames) Capture(image.Rectangle) (image.Image, error) {
	f.captures++
	if f.onCapture != nil {
		f.onCapture(f.captures)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.frame, nil
}

type fakeSleeper struct {
	sleeps  []time.Duration
	onSleep func(n int)
}

func (s *fakeSleeper) sleep(ctx context.Context, d time.Duration) error {
	s.sleeps = append(s.sleeps, d)
	if s.onSleep != nil {
		s.onSleep(len(s.sleeps))
	}
	return ctx.Err()
}

// --- helpers ---

var (
	square   = color.RGBA{204, 114, 238, 255}
	cross    = color.RGBA{56, 161, 229, 255}
	autoplay = color.RGBA{236, 229, 216, 255}
	white    = color.RGBA{255, 255, 255, 255}
)

func englishFrame(dialogue bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1920, 1080))
	img.SetRGBA(1450, 1010, square)
	img.SetRGBA(1683, 1013, cross)
	if dialogue {
		img.SetRGBA(1300, 770, white)
	}
	return img
}

func kbmFrame() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1920, 1080))
	img.SetRGBA(111, 46, autoplay)
	return img
}

func testBotConfig() BotConfig {
	cfg := config.DefaultConfig()
	return BotConfig{
		Variants:         cfg.DetectVariants(),
		Dialogue:         cfg.DialogueRule(),
		OptionRegion:     cfg.OptionRegion(),
		PausePoll:        500 * time.Millisecond,
		Idle:             50 * time.Millisecond,
		ClickPause:       100 * time.Millisecond,
		Jitter:           DefaultJitterConfig(),
		RepositionFactor: 40,
	}
}

type harness struct {
	bot     *Bot
	rec     *recorder
	frames  *fakeFrames
	sleeper *fakeSleeper
	pad     *fakeGamepad
	labels  []string
	clock   time.Time
}

func newHarness(frame image.Image) *harness {
	h := &harness{
		rec:     &recorder{},
		frames:  &fakeFrames{frame: frame},
		sleeper: &fakeSleeper{},
		clock:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	h.pad = &fakeGamepad{rec: h.rec}
	dev := Devices{Frames: h.frames, Pointer: &fakePointer{rec: h.rec}, Gamepad: h.pad}
	h.bot = NewBot(testBotConfig(), dev, &StatusFlag{},
		func(string) {},
		func(s string) { h.labels = append(h.labels, s) },
		func(string, ...interface{}) {},
	)
	h.bot.jitter = NewJitterWithRand(DefaultJitterConfig(), rand.New(rand.NewPCG(1, 2)))
	h.bot.sleep = h.sleeper.sleep
	h.bot.now = func() time.Time { return h.clock }
	return h
}

var (
	dpadSequence  = []string{"dpad up", "update", "reset", "update"}
	crossSequence = []string{"press cross", "update", "release cross", "update"}
)

func equalEvents(t *testing.T, got, want []string) {
	t.Helper()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("events:\n got  %v\n want %v", got, want)
	}
}

func countSubsequence(events, seq []string) int {
	n := 0
	for i := 0; i+len(seq) <= len(events); i++ {
		if strings.Join(events[i:i+len(seq)], "|") == strings.Join(seq, "|") {
			n++
		}
	}
	return n
}

// --- dispatcher ---

func TestPassEnglishControllerWithoutDialoguePressesCross(t *testing.T) {
	h := newHarness(englishFrame(false))
	h.bot.Status.Store(StatusRun)

	acted, err := h.bot.pass(context.Background())
	if err != nil || !acted {
		t.Fatalf("pass() = %v, %v", acted, err)
	}
	equalEvents(t, h.rec.events, crossSequence)

	if len(h.sleeper.sleeps) != 2 {
		t.Fatalf("sleeps = %v, want one after press and one after release", h.sleeper.sleeps)
	}
}

func TestPassEnglishControllerWithDialogueSelectsLastOptionThenConfirms(t *testing.T) {
	h := newHarness(englishFrame(true))
	h.bot.Status.Store(StatusRun)

	if _, err := h.bot.pass(context.Background()); err != nil {
		t.Fatalf("pass() error = %v", err)
	}

	want := append(append([]string{}, dpadSequence...), crossSequence...)
	if len(h.rec.events) < len(want) {
		t.Fatalf("events = %v", h.rec.events)
	}
	equalEvents(t, h.rec.events[:len(want)], want)

	for i, d := range h.sleeper.sleeps[:4] {
		if d < 120*time.Millisecond || d >= 300*time.Millisecond {
			t.Errorf("jitter sleep %d = %s, want within [120ms, 300ms)", i, d)
		}
	}
}

func TestPassDialogueFiresEveryBranch(t *testing.T) {
	// Branches are independent: an active dialogue triggers both gamepad
	// variants and the mouse variant in the same pass.
	h := newHarness(englishFrame(true))
	h.bot.Status.Store(StatusRun)

	if _, err := h.bot.pass(context.Background()); err != nil {
		t.Fatalf("pass() error = %v", err)
	}

	full := append(append([]string{}, dpadSequence...), crossSequence...)
	if n := countSubsequence(h.rec.events, full); n != 2 {
		t.Errorf("gamepad sequences = %d, want 2 (ds4_eng and ds4_rus)", n)
	}
	tail := h.rec.events[len(h.rec.events)-2:]
	equalEvents(t, tail, []string{"move", "click"})

	if h.bot.actions != 3 {
		t.Errorf("actions = %d, want 3", h.bot.actions)
	}
	// Re-sampled after each of the three branches.
	if h.frames.captures != 4 {
		t.Errorf("captures = %d, want 4", h.frames.captures)
	}
}

func TestPassKeyboardMouseClicksWithoutMovingBeforeTimerElapses(t *testing.T) {
	h := newHarness(kbmFrame())
	h.bot.Status.Store(StatusRun)
	h.bot.lastReposition = h.clock
	h.bot.repositionInterval = time.Hour

	if _, err := h.bot.pass(context.Background()); err != nil {
		t.Fatalf("pass() error = %v", err)
	}
	equalEvents(t, h.rec.events, []string{"click"})
	if len(h.sleeper.sleeps) != 1 || h.sleeper.sleeps[0] != 100*time.Millisecond {
		t.Errorf("sleeps = %v, want the click pause", h.sleeper.sleeps)
	}
}

func TestPassKeyboardMouseRepositionTimer(t *testing.T) {
	h := newHarness(kbmFrame())
	h.bot.Status.Store(StatusRun)
	ctx := context.Background()

	// Never moved yet: first pass repositions.
	h.bot.pass(ctx)
	equalEvents(t, h.rec.events, []string{"move", "click"})

	// One second later is below the minimum interval (120ms * 40).
	h.clock = h.clock.Add(time.Second)
	h.bot.pass(ctx)
	equalEvents(t, h.rec.events[2:], []string{"click"})

	// Thirteen seconds is above the maximum interval (300ms * 40).
	h.clock = h.clock.Add(13 * time.Second)
	h.bot.pass(ctx)
	equalEvents(t, h.rec.events[3:], []string{"move", "click"})

	for _, p := range h.rec.moves {
		if p.X < 1300 || p.X > 1700 || p.Y < 790 || p.Y > 800 {
			t.Errorf("moved to %v, outside the bottom option", p)
		}
	}
}

func TestPassPauseBetweenBranchesStopsAfterCurrentSequence(t *testing.T) {
	h := newHarness(englishFrame(true))
	h.bot.Status.Store(StatusRun)
	h.sleeper.onSleep = func(n int) {
		if n == 1 {
			h.bot.Status.Store(StatusPause)
		}
	}

	if _, err := h.bot.pass(context.Background()); err != nil {
		t.Fatalf("pass() error = %v", err)
	}

	// The ds4_eng sequence runs to completion so nothing stays pressed,
	// then ds4_rus and kbm are skipped.
	want := append(append([]string{}, dpadSequence...), crossSequence...)
	equalEvents(t, h.rec.events, want)
	if h.bot.actions != 1 {
		t.Errorf("actions = %d, want 1", h.bot.actions)
	}
}

func TestPassNothingDetected(t *testing.T) {
	h := newHarness(image.NewRGBA(image.Rect(0, 0, 1920, 1080)))
	h.bot.Status.Store(StatusRun)

	acted, err := h.bot.pass(context.Background())
	if err != nil || acted {
		t.Fatalf("pass() = %v, %v; want no action", acted, err)
	}
	if len(h.rec.events) != 0 {
		t.Errorf("events = %v, want none", h.rec.events)
	}
}

func TestPassGamepadErrorPropagates(t *testing.T) {
	h := newHarness(englishFrame(false))
	h.bot.Status.Store(StatusRun)
	boom := errors.New("bus gone")
	h.pad.err = boom

	if _, err := h.bot.pass(context.Background()); !errors.Is(err, boom) {
		t.Errorf("pass() error = %v, want %v", err, boom)
	}
}

// --- control loop ---

func TestRunPausedPerformsNoDetection(t *testing.T) {
	h := newHarness(englishFrame(true))
	h.sleeper.onSleep = func(n int) {
		if n == 3 {
			h.bot.Status.Store(StatusExit)
		}
	}

	if err := h.bot.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if h.frames.captures != 0 {
		t.Errorf("captures = %d while paused, want 0", h.frames.captures)
	}
	if len(h.rec.events) != 0 {
		t.Errorf("events = %v while paused, want none", h.rec.events)
	}
	for _, d := range h.sleeper.sleeps {
		if d != 500*time.Millisecond {
			t.Errorf("pause sleep = %s, want 500ms", d)
		}
	}
}

func TestRunStartsOnRunAndStopsOnExit(t *testing.T) {
	h := newHarness(kbmFrame())
	h.sleeper.onSleep = func(n int) {
		if n == 2 {
			h.bot.Status.Store(StatusRun)
		}
	}
	h.frames.onCapture = func(n int) {
		if n == 2 {
			h.bot.Status.Store(StatusExit)
		}
	}

	if err := h.bot.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	equalEvents(t, h.rec.events, []string{"move", "click"})
	equalEvents(t, h.labels, []string{"Status: Paused", "Status: Running", "Status: Exiting"})
}

func TestRunExitDuringSequenceStopsActions(t *testing.T) {
	h := newHarness(englishFrame(true))
	h.bot.Status.Store(StatusRun)
	h.sleeper.onSleep = func(n int) {
		if n == 1 {
			h.bot.Status.Store(StatusExit)
		}
	}

	if err := h.bot.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	equalEvents(t, h.rec.events, []string{"dpad up", "update"})
}

func TestRunCaptureErrorStopsLoop(t *testing.T) {
	h := newHarness(nil)
	h.bot.Status.Store(StatusRun)
	boom := errors.New("display unavailable")
	h.frames.err = boom

	if err := h.bot.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want %v", err, boom)
	}
}

func TestRunIdleSleepAndCancel(t *testing.T) {
	h := newHarness(image.NewRGBA(image.Rect(0, 0, 1920, 1080)))
	h.bot.Status.Store(StatusRun)
	ctx, cancel := context.WithCancel(context.Background())
	h.sleeper.onSleep = func(int) { cancel() }

	if err := h.bot.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(h.sleeper.sleeps) != 1 || h.sleeper.sleeps[0] != 50*time.Millisecond {
		t.Errorf("sleeps = %v, want one idle sleep", h.sleeper.sleeps)
	}
	if h.labels[len(h.labels)-1] != "Status: Exiting" {
		t.Errorf("last label = %q", h.labels[len(h.labels)-1])
	}
}

func TestSleepContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("sleepContext() = %v, want context.Canceled", err)
	}
	if err := sleepContext(context.Background(), 0); err != nil {
		t.Errorf("sleepContext(0) = %v", err)
	}
}
