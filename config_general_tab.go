package main

import (
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/rollout-board/pkg/ui/components"
)

const resetHoldSeconds = 2

func (sw *SettingsWindow) buildGeneralTab() fyne.CanvasObject {
	sw.autoStartCheck = widget.NewCheck("Iniciar junto com o sistema", func(checked bool) {
		sw.markChanged()
	})
	sw.autoStartCheck.SetChecked(sw.config.AutoStart)

	sw.soundPathEntry = widget.NewEntry()
	sw.soundPathEntry.SetPlaceHolder("Som padrão (vazio)")
	sw.soundPathEntry.SetText(sw.config.AlertSoundPath)
	sw.soundPathEntry.OnChanged = func(string) {
		sw.markChanged()
	}

	browseSoundButton := widget.NewButton("Procurar", func() {
		fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			defer reader.Close()
			sw.soundPathEntry.SetText(reader.URI().Path())
		}, sw.window)
		fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".wav"}))
		fileDialog.Show()
	})

	tickOptions := []string{"10 s", "15 s", "30 s", "60 s"}
	sw.tickSelect = widget.NewSelect(tickOptions, func(string) {
		sw.markChanged()
	})
	sw.tickSelect.SetSelected(strconv.Itoa(sw.config.DeadlineTickSeconds) + " s")

	reloadOptions := []string{"1 min", "2 min", "5 min", "10 min", "15 min"}
	sw.reloadSelect = widget.NewSelect(reloadOptions, func(string) {
		sw.markChanged()
	})
	sw.reloadSelect.SetSelected(strconv.Itoa(sw.config.ReloadSeconds/60) + " min")

	var resetButton *components.HoldButton
	resetButton = components.NewHoldButton("Restaurar padrões (segurar)", func() {
		sw.startResetProgress(resetButton)
	}, func() {
		sw.stopResetProgress(resetButton)
	})

	autoStartLabel := widget.NewLabel("Inicialização:")
	autoStartHelp := widget.NewLabel("Reabre o painel automaticamente depois de religar o equipamento")
	autoStartHelp.Importance = widget.MediumImportance

	soundLabel := widget.NewLabel("Som do alerta:")
	soundHelp := widget.NewLabel("Arquivo WAV tocado quando um prazo entra em alerta")
	soundHelp.Importance = widget.MediumImportance

	tickLabel := widget.NewLabel("Verificação de prazos:")
	tickHelp := widget.NewLabel("Intervalo entre varreduras dos prazos do dia")
	tickHelp.Importance = widget.MediumImportance

	reloadLabel := widget.NewLabel("Recarga dos dados:")
	reloadHelp := widget.NewLabel("Intervalo entre releituras da planilha e dos calendários")
	reloadHelp.Importance = widget.MediumImportance

	soundContainer := container.NewBorder(nil, nil, nil, browseSoundButton, sw.soundPathEntry)

	form := container.New(layout.NewFormLayout(),
		container.NewVBox(autoStartLabel, autoStartHelp),
		sw.autoStartCheck,

		container.NewVBox(soundLabel, soundHelp),
		soundContainer,

		container.NewVBox(tickLabel, tickHelp),
		container.NewVBox(sw.tickSelect),

		container.NewVBox(reloadLabel, reloadHelp),
		container.NewVBox(sw.reloadSelect),
	)

	content := container.NewVBox(
		widget.NewLabel("Configurações gerais"),
		widget.NewSeparator(),
		form,
		widget.NewSeparator(),
		container.NewHBox(resetButton),
	)

	return container.NewPadded(container.NewVScroll(content))
}

// startResetProgress drives the hold-to-reset progress bar. Releasing the
// button before it fills cancels the reset.
func (sw *SettingsWindow) startResetProgress(button *components.HoldButton) {
	if sw.resetHeld {
		return
	}

	sw.resetHeld = true
	sw.resetProgress = 0
	button.SetProgress(0)

	tickInterval := 50 * time.Millisecond
	totalTicks := float64(resetHoldSeconds*1000) / float64(tickInterval.Milliseconds())
	progressIncrement := 1.0 / totalTicks

	sw.resetTicker = time.NewTicker(tickInterval)

	go func() {
		for range sw.resetTicker.C {
			if !sw.resetHeld {
				return
			}

			sw.resetProgress += progressIncrement
			currentProgress := sw.resetProgress

			fyne.Do(func() {
				button.SetProgress(currentProgress)
			})

			if currentProgress >= 1.0 {
				sw.resetTicker.Stop()
				fyne.Do(func() {
					sw.applyDefaults()
					button.SetProgress(0)
				})
				return
			}
		}
	}()
}

func (sw *SettingsWindow) stopResetProgress(button *components.HoldButton) {
	sw.resetHeld = false
	if sw.resetTicker != nil {
		sw.resetTicker.Stop()
	}
	sw.resetProgress = 0
	button.SetProgress(0)
}

func (sw *SettingsWindow) applyDefaults() {
	sw.tickSelect.SetSelected(strconv.Itoa(defaultDeadlineTickSeconds) + " s")
	sw.reloadSelect.SetSelected(strconv.Itoa(defaultReloadSeconds/60) + " min")
	sw.soundPathEntry.SetText("")
	sw.markChanged()
}
