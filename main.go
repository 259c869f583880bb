package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ConserveLee/dialogue-skip/app/control"
	"github.com/ConserveLee/dialogue-skip/app/tools"
	"github.com/ConserveLee/dialogue-skip/internal/config"
	"github.com/ConserveLee/dialogue-skip/internal/constants"
	"github.com/ConserveLee/dialogue-skip/internal/engine"
	"github.com/ConserveLee/dialogue-skip/internal/engine/input"
	"github.com/ConserveLee/dialogue-skip/internal/engine/screen"
	"github.com/ConserveLee/dialogue-skip/internal/hotkey"
	"github.com/ConserveLee/dialogue-skip/internal/logger"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml (default: user config dir)")
	headless := flag.Bool("headless", false, "run without the control window")
	verbose := flag.Bool("verbose", false, "print debug output")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	console := logger.NewConsoleLogger(os.Stderr, *verbose)
	if *headless {
		os.Exit(runHeadless(cfg, logger.NewAppLogger(nil, console)))
	}
	os.Exit(runWindow(cfg, console))
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// session is one bot plus its hotkey listener.
type session struct {
	bot      *engine.Bot
	listener *hotkey.Listener
	bindings hotkey.Bindings
	gamepad  input.Gamepad
}

func newSession(cfg *config.Config, appLogger *logger.AppLogger, statusFunc func(string), quit func()) (*session, error) {
	sampler := screen.NewSampler()
	sampler.SetDisplayID(cfg.Display.Index)
	pointer := input.NewPointer()
	pointer.SetDisplayID(cfg.Display.Index)

	var gamepad input.Gamepad = input.NewNopGamepad()
	if cfg.Gamepad.Enabled {
		ds4, err := input.NewDS4()
		if err != nil {
			return nil, fmt.Errorf("virtual gamepad: %w (set [gamepad] enabled = false to run mouse-only)", err)
		}
		gamepad = ds4
	}

	status := &engine.StatusFlag{}
	run, pause, quitKey := cfg.HotkeyNames()
	bindings := hotkey.Bindings{Run: run, Pause: pause, Quit: quitKey}
	logFunc := func(msg string) { appLogger.Info(msg) }

	listener, err := hotkey.NewListener(bindings, status, logFunc, quit)
	if err != nil {
		gamepad.Close()
		return nil, err
	}

	bot := engine.NewBot(botConfig(cfg), engine.Devices{
		Frames:  sampler,
		Pointer: pointer,
		Gamepad: gamepad,
	}, status, logFunc, statusFunc, appLogger.Debug)

	return &session{bot: bot, listener: listener, bindings: bindings, gamepad: gamepad}, nil
}

func botConfig(cfg *config.Config) engine.BotConfig {
	t := cfg.Timing
	return engine.BotConfig{
		Variants:     cfg.DetectVariants(),
		Dialogue:     cfg.DialogueRule(),
		OptionRegion: cfg.OptionRegion(),
		PausePoll:    t.PausePoll.Duration,
		Idle:         t.Idle.Duration,
		ClickPause:   constants.ClickPause,
		Jitter: engine.JitterConfig{
			ShortMin: t.ShortMin.Duration,
			ShortMax: t.ShortMax.Duration,
			LongMin:  t.LongMin.Duration,
			LongMax:  t.LongMax.Duration,
			LongOdds: t.LongOdds,
		},
		RepositionFactor: t.RepositionFactor,
	}
}

// runHeadless is the console program: hotkeys only, Ctrl+C also quits.
func runHeadless(cfg *config.Config, appLogger *logger.AppLogger) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := newSession(cfg, appLogger, func(string) {}, cancel)
	if err != nil {
		appLogger.Error("Startup Error: %v", err)
		return 1
	}
	defer s.gamepad.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			appLogger.Info("received shutdown signal")
			s.listener.Apply(engine.StatusExit)
		case <-ctx.Done():
		}
	}()

	go s.listener.Run(ctx)
	appLogger.Info("%s", s.bindings.Banner())

	if err := s.bot.Run(ctx); err != nil {
		appLogger.Error("%v", err)
		return 1
	}
	return 0
}

// runWindow shows the control window; the bot runs alongside it.
func runWindow(cfg *config.Config, console *slog.Logger) int {
	myApp := app.New()
	myWindow := myApp.NewWindow("Dialogue Skip")
	myWindow.Resize(fyne.NewSize(500, 600))

	// --- Data Binding ---
	logData := binding.NewStringList()
	statusData := binding.NewString()
	statusData.Set(engine.StatusPause.Label())

	appLogger := logger.NewAppLogger(logData, console)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	statusFunc := func(msg string) { fyne.Do(func() { statusData.Set(msg) }) }
	s, err := newSession(cfg, appLogger, statusFunc, cancel)
	if err != nil {
		console.Error(fmt.Sprintf("Startup Error: %v", err))
		return 1
	}
	defer s.gamepad.Close()

	tabs := container.NewAppTabs(
		container.NewTabItem("Dialogue Skip", control.NewControlPanel(s.listener, s.bindings.Banner(), statusData, logData)),
		container.NewTabItem("Probe Inspector", tools.NewToolsPanel(myWindow, cfg.Display.Index, s.bot.Config.Variants, s.bot.Config.Dialogue)),
	)
	tabs.SetTabLocation(container.TabLocationTop)
	myWindow.SetContent(tabs)
	myWindow.SetOnClosed(func() { s.listener.Apply(engine.StatusExit) })

	go s.listener.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.bot.Run(ctx)
		fyne.Do(myApp.Quit)
	}()
	appLogger.Info("%s", s.bindings.Banner())

	myWindow.ShowAndRun()
	cancel()

	if err := <-errCh; err != nil {
		console.Error(err.Error())
		return 1
	}
	return 0
}
