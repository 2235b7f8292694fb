package main

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"

	"github.com/borgmon/rollout-board/pkg/source"
)

func (sw *SettingsWindow) buildCalendarTab() fyne.CanvasObject {
	sw.icalSourcesData = append([]source.ICalSource{}, sw.config.ICalSources...)

	var selectedIndex int = -1

	sw.icalSourcesList = widget.NewList(
		func() int {
			return len(sw.icalSourcesData)
		},
		func() fyne.CanvasObject {
			nameLabel := widget.NewLabel("Nome")
			nameLabel.TextStyle.Bold = true
			urlLabel := widget.NewLabel("URL")
			urlLabel.Importance = widget.MediumImportance
			return container.NewVBox(nameLabel, urlLabel)
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			vbox := o.(*fyne.Container)
			nameLabel := vbox.Objects[0].(*widget.Label)
			urlLabel := vbox.Objects[1].(*widget.Label)

			s := sw.icalSourcesData[i]
			nameLabel.SetText(s.Name)

			displayURL := s.URL
			if len(displayURL) > 60 {
				displayURL = displayURL[:57] + "..."
			}
			urlLabel.SetText(displayURL)
		})

	sw.icalSourcesList.OnSelected = func(id widget.ListItemID) {
		selectedIndex = id
	}

	plusButton := widget.NewButton("", func() {
		nameEntry := widget.NewEntry()
		nameEntry.SetPlaceHolder("ex.: Agenda da diretoria")
		nameEntry.Validator = func(s string) error {
			if s == "" {
				return fmt.Errorf("o nome é obrigatório")
			}
			return nil
		}

		urlEntry := widget.NewMultiLineEntry()
		urlEntry.SetPlaceHolder("https://calendario.exemplo.com/ical/...")
		urlEntry.Wrapping = fyne.TextWrapBreak
		urlEntry.SetMinRowsVisible(5)
		urlEntry.Validator = func(s string) error {
			if s == "" {
				return fmt.Errorf("a URL é obrigatória")
			}
			if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
				return fmt.Errorf("a URL deve começar com http:// ou https://")
			}
			for _, existing := range sw.icalSourcesData {
				if existing.URL == s {
					return fmt.Errorf("este calendário já foi adicionado")
				}
			}
			return nil
		}

		formItems := []*widget.FormItem{
			widget.NewFormItem("Nome", nameEntry),
			widget.NewFormItem("URL", urlEntry),
		}

		addDialog := dialog.NewForm("Adicionar calendário", "Adicionar", "Cancelar", formItems, func(confirmed bool) {
			if !confirmed {
				return
			}

			sw.icalSourcesData = append(sw.icalSourcesData, source.ICalSource{
				ID:   uuid.New().String(),
				Name: nameEntry.Text,
				URL:  urlEntry.Text,
			})

			sw.icalSourcesList.Refresh()
			sw.markChanged()
		}, sw.window)

		addDialog.Resize(fyne.NewSize(600, 300))
		addDialog.Show()
	})
	plusButton.Icon = theme.ContentAddIcon()

	minusButton := widget.NewButton("", func() {
		if selectedIndex >= 0 && selectedIndex < len(sw.icalSourcesData) {
			sourceName := sw.icalSourcesData[selectedIndex].Name
			dialog.ShowConfirm("Remover calendário",
				fmt.Sprintf("Remover '%s'?", sourceName),
				func(confirmed bool) {
					if confirmed {
						sw.icalSourcesData = append(sw.icalSourcesData[:selectedIndex], sw.icalSourcesData[selectedIndex+1:]...)
						sw.icalSourcesList.UnselectAll()
						selectedIndex = -1
						sw.icalSourcesList.Refresh()
						sw.markChanged()
					}
				}, sw.window)
		}
	})
	minusButton.Icon = theme.ContentRemoveIcon()

	addControls := container.NewHBox(plusButton, minusButton)

	listScroll := container.NewScroll(sw.icalSourcesList)
	listScroll.SetMinSize(fyne.NewSize(0, 200))

	listWithBorder := container.NewBorder(
		widget.NewSeparator(),
		widget.NewSeparator(),
		widget.NewSeparator(),
		widget.NewSeparator(),
		listScroll,
	)

	help := widget.NewLabel("Compromissos dos calendários entram no quadro junto com a planilha. O nome do calendário aparece como diretoria.")
	help.Wrapping = fyne.TextWrapWord
	help.Importance = widget.MediumImportance

	content := container.NewVBox(
		widget.NewLabel("Calendários (iCal)"),
		widget.NewSeparator(),
		help,
		container.NewVBox(listWithBorder, addControls),
	)

	return container.NewPadded(container.NewVScroll(content))
}
