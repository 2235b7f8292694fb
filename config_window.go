package main

import (
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/rollout-board/pkg/source"
)

// SettingsWindow lets the operator point the board at a spreadsheet or
// calendar feeds and tune the tick cadences. The board itself stays
// hands-off; this window is only reachable through the gear button or the
// S key.
type SettingsWindow struct {
	window fyne.Window
	app    fyne.App
	config *Config
	onSave func(*Config)

	// General tab
	autoStartCheck *widget.Check
	soundPathEntry *widget.Entry
	tickSelect     *widget.Select
	reloadSelect   *widget.Select

	// Spreadsheet tab
	sourcePathEntry *widget.Entry
	sheetEntry      *widget.Entry

	// Calendars tab
	icalSourcesList *widget.List
	icalSourcesData []source.ICalSource

	hasUnsavedChanges bool
	saveStatusLabel   *widget.Label
	saveButton        *widget.Button

	resetHeld     bool
	resetProgress float64
	resetTicker   *time.Ticker
}

func NewSettingsWindow(app fyne.App, config *Config, onSave func(*Config)) *SettingsWindow {
	sw := &SettingsWindow{
		app:    app,
		config: config,
		onSave: onSave,
	}

	sw.window = app.NewWindow("Planner Semanal - Configurações")
	sw.buildUI()

	return sw
}

func (sw *SettingsWindow) buildUI() {
	tabs := container.NewAppTabs(
		container.NewTabItem("Geral", sw.buildGeneralTab()),
		container.NewTabItem("Planilha", sw.buildSpreadsheetTab()),
		container.NewTabItem("Calendários", sw.buildCalendarTab()),
	)

	sw.saveStatusLabel = widget.NewLabel("")
	sw.saveStatusLabel.Importance = widget.SuccessImportance

	sw.saveButton = widget.NewButton("Salvar", func() {
		sw.saveButton.Disable()
		sw.saveStatusLabel.SetText("Salvando...")
		sw.saveStatusLabel.Importance = widget.MediumImportance
		sw.saveStatusLabel.Refresh()

		newConfig := sw.getConfigFromUI()
		go func() {
			if err := setupAutostart(newConfig.AutoStart); err != nil {
				log.Printf("Error setting autostart: %v", err)
				fyne.Do(func() {
					sw.saveStatusLabel.SetText("Erro ao configurar inicialização automática")
					sw.saveStatusLabel.Importance = widget.DangerImportance
					sw.saveStatusLabel.Refresh()
					sw.updateSaveButtonState()
				})
				return
			}

			saveConfig(sw.app, newConfig)
			if sw.onSave != nil {
				sw.onSave(newConfig)
			}

			fyne.Do(func() {
				sw.config = newConfig
				sw.hasUnsavedChanges = false
				sw.saveStatusLabel.SetText("Configurações salvas")
				sw.saveStatusLabel.Importance = widget.SuccessImportance
				sw.saveStatusLabel.Refresh()
				sw.updateSaveButtonState()

				go func() {
					time.Sleep(3 * time.Second)
					fyne.Do(func() {
						if sw.saveStatusLabel.Text == "Configurações salvas" {
							sw.saveStatusLabel.SetText("")
							sw.saveStatusLabel.Refresh()
						}
					})
				}()
			})
		}()
	})
	sw.saveButton.Importance = widget.HighImportance
	sw.saveButton.Disable()

	closeButton := widget.NewButton("Fechar", func() {
		sw.handleClose()
	})

	buttonRow := container.NewBorder(
		nil,
		nil,
		container.NewHBox(sw.saveButton, sw.saveStatusLabel),
		container.NewHBox(closeButton),
		container.NewHBox(),
	)

	content := container.NewBorder(
		nil,
		container.NewPadded(buttonRow),
		nil,
		nil,
		tabs,
	)

	sw.window.SetContent(content)
	sw.window.Resize(fyne.NewSize(760, 560))
	sw.window.CenterOnScreen()

	sw.window.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		if key.Name == fyne.KeyEscape {
			sw.handleClose()
		}
	})

	sw.window.SetCloseIntercept(func() {
		sw.handleClose()
	})
}

func (sw *SettingsWindow) getConfigFromUI() *Config {
	tickSeconds := sw.config.DeadlineTickSeconds
	if sw.tickSelect.Selected != "" {
		var val int
		if _, err := fmt.Sscanf(sw.tickSelect.Selected, "%d s", &val); err == nil {
			tickSeconds = val
		}
	}

	reloadSeconds := sw.config.ReloadSeconds
	if sw.reloadSelect.Selected != "" {
		var val int
		if _, err := fmt.Sscanf(sw.reloadSelect.Selected, "%d min", &val); err == nil {
			reloadSeconds = val * 60
		}
	}

	return &Config{
		AutoStart:           sw.autoStartCheck.Checked,
		SourcePath:          sw.sourcePathEntry.Text,
		SheetName:           sw.sheetEntry.Text,
		ICalSources:         sw.icalSourcesData,
		DeadlineTickSeconds: tickSeconds,
		ReloadSeconds:       reloadSeconds,
		AlertSoundPath:      sw.soundPathEntry.Text,
	}
}

func (sw *SettingsWindow) Show() {
	sw.window.Show()
}

func (sw *SettingsWindow) markChanged() {
	sw.hasUnsavedChanges = true
	sw.updateSaveButtonState()
}

func (sw *SettingsWindow) updateSaveButtonState() {
	if sw.saveButton == nil {
		return
	}
	if sw.hasUnsavedChanges {
		sw.saveButton.Enable()
	} else {
		sw.saveButton.Disable()
	}
}

func (sw *SettingsWindow) handleClose() {
	if sw.hasActualChanges() {
		dialog.ShowConfirm("Alterações não salvas",
			"Existem alterações não salvas. Deseja fechar mesmo assim?",
			func(confirmed bool) {
				if confirmed {
					sw.window.Close()
				}
			}, sw.window)
	} else {
		sw.window.Close()
	}
}

// hasActualChanges compares the current UI state against the saved config so
// an opened-and-untouched window closes without nagging.
func (sw *SettingsWindow) hasActualChanges() bool {
	current := sw.getConfigFromUI()

	if current.AutoStart != sw.config.AutoStart ||
		current.SourcePath != sw.config.SourcePath ||
		current.SheetName != sw.config.SheetName ||
		current.DeadlineTickSeconds != sw.config.DeadlineTickSeconds ||
		current.ReloadSeconds != sw.config.ReloadSeconds ||
		current.AlertSoundPath != sw.config.AlertSoundPath {
		return true
	}

	if len(current.ICalSources) != len(sw.config.ICalSources) {
		return true
	}
	for i := range current.ICalSources {
		if current.ICalSources[i] != sw.config.ICalSources[i] {
			return true
		}
	}

	return false
}
