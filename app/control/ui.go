package control

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"

	"github.com/ConserveLee/dialogue-skip/internal/engine"
)

// Switcher applies a status change the same way its hotkey does.
type Switcher interface {
	Apply(target engine.Status)
}

// NewControlPanel creates the start/pause/quit panel with the status line and log
func NewControlPanel(sw Switcher, banner string, statusData binding.String, logData binding.StringList) fyne.CanvasObject {
	// --- UI Components ---

	// 1. Status & Logs
	statusLabel := widget.NewLabelWithData(statusData)
	statusLabel.TextStyle = fyne.TextStyle{Bold: true}

	logList := widget.NewListWithData(
		logData,
		func() fyne.CanvasObject { return widget.NewLabel("Log entry template") },
		func(i binding.DataItem, o fyne.CanvasObject) { o.(*widget.Label).Bind(i.(binding.String)) },
	)

	// Auto-scroll
	logData.AddListener(binding.NewDataListener(func() {
		list, _ := logData.Get()
		if len(list) > 0 {
			logList.ScrollToBottom()
		}
	}))

	// 2. Buttons mirror the hotkeys
	startBtn := widget.NewButton("Start", func() { sw.Apply(engine.StatusRun) })
	startBtn.Importance = widget.HighImportance
	pauseBtn := widget.NewButton("Pause", func() { sw.Apply(engine.StatusPause) })
	quitBtn := widget.NewButton("Quit", func() { sw.Apply(engine.StatusExit) })
	quitBtn.Importance = widget.DangerImportance

	// --- Layout ---
	controls := container.NewVBox(
		widget.NewLabel("Hotkeys: "+banner),
		statusLabel,
		container.NewHBox(startBtn, pauseBtn, quitBtn),
		widget.NewSeparator(),
		widget.NewLabel("Log:"),
	)

	return container.NewBorder(controls, nil, nil, nil, logList)
}
