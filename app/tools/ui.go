package tools

import (
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ConserveLee/dialogue-skip/internal/engine/detect"
	"github.com/ConserveLee/dialogue-skip/internal/engine/screen"
)

// CapturesDir is where inspected screenshots are saved.
const CapturesDir = "captures"

// NewToolsPanel creates the probe inspector: capture a display and compare
// every probe in the table with the color actually on screen. displayIndex
// preselects the display the bot samples.
func NewToolsPanel(win fyne.Window, displayIndex int, variants []detect.Variant, rule detect.DialogueRule) fyne.CanvasObject {
	// State
	sampler := screen.NewSampler()
	var lastCapture image.Image

	// --- UI Components ---

	// 1. Screen Selector
	numDisplays := screen.NumDisplays()
	var displayOptions []string
	for i := 0; i < numDisplays; i++ {
		displayOptions = append(displayOptions, screen.DisplayLabel(i))
	}
	if len(displayOptions) == 0 {
		displayOptions = []string{"Display 0 (Default)"}
	}

	displaySelect := widget.NewSelect(displayOptions, func(selected string) {
		var id int
		if _, err := fmt.Sscanf(selected, "Display %d", &id); err == nil {
			sampler.SetDisplayID(id)
		}
	})
	displaySelect.SetSelected(displayOptions[initialDisplay(displayIndex, len(displayOptions))])

	// 2. Result area
	summary := widget.NewLabel("Capture a screen to inspect the probes.")
	summary.TextStyle = fyne.TextStyle{Bold: true}
	readingsLabel := widget.NewLabel("")
	readingsLabel.TextStyle = fyne.TextStyle{Monospace: true}

	// 3. Action Buttons
	saveBtn := widget.NewButton("Save Screenshot", func() {
		if lastCapture == nil {
			return
		}
		path, err := saveCapture(lastCapture)
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		summary.SetText("Saved " + path)
	})
	saveBtn.Disable()

	inspectBtn := widget.NewButton("Capture & Inspect", func() {
		img, err := sampler.CaptureScreen()
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		lastCapture = img
		saveBtn.Enable()

		summary.SetText(detect.Observe(img, variants, rule).String())
		readingsLabel.SetText(detect.FormatReadings(detect.Readings(img, variants, rule)))
	})
	inspectBtn.Importance = widget.HighImportance

	openDirBtn := widget.NewButton("Open Captures Folder", func() {
		os.MkdirAll(CapturesDir, 0o755)
		openDir(CapturesDir)
	})

	// Layout
	controls := container.NewVBox(
		widget.NewLabel("Screen:"),
		displaySelect,
		container.NewHBox(inspectBtn, saveBtn, openDirBtn),
		widget.NewSeparator(),
		summary,
	)

	return container.NewBorder(controls, nil, nil, nil, container.NewVScroll(readingsLabel))
}

// initialDisplay clamps the configured display to the available options.
func initialDisplay(index, n int) int {
	if index < 0 || index >= n {
		return 0
	}
	return index
}

func saveCapture(img image.Image) (string, error) {
	if err := os.MkdirAll(CapturesDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(CapturesDir, fmt.Sprintf("probe_%s.png", time.Now().Format("20060102_150405")))
	return path, screen.SavePNG(img, path)
}

func openDir(path string) {
	var cmd *exec.Cmd
	absPath, _ := filepath.Abs(path)

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", absPath)
	case "windows":
		cmd = exec.Command("explorer", absPath)
	default:
		cmd = exec.Command("xdg-open", absPath)
	}
	cmd.Run()
}
