package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

func (sw *SettingsWindow) buildSpreadsheetTab() fyne.CanvasObject {
	sw.sourcePathEntry = widget.NewEntry()
	sw.sourcePathEntry.SetPlaceHolder("/caminho/para/agendamentos.xlsx")
	sw.sourcePathEntry.SetText(sw.config.SourcePath)
	sw.sourcePathEntry.OnChanged = func(string) {
		sw.markChanged()
	}

	browseButton := widget.NewButton("Procurar", func() {
		fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			defer reader.Close()
			sw.sourcePathEntry.SetText(reader.URI().Path())
		}, sw.window)
		fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".xlsx"}))
		fileDialog.Show()
	})

	sw.sheetEntry = widget.NewEntry()
	sw.sheetEntry.SetText(sw.config.SheetName)
	sw.sheetEntry.OnChanged = func(string) {
		sw.markChanged()
	}

	pathLabel := widget.NewLabel("Arquivo:")
	pathHelp := widget.NewLabel("Planilha com os agendamentos da semana")
	pathHelp.Importance = widget.MediumImportance

	sheetLabel := widget.NewLabel("Aba:")
	sheetHelp := widget.NewLabel("Nome da aba que contém a tabela de agendamentos")
	sheetHelp.Importance = widget.MediumImportance

	pathContainer := container.NewBorder(nil, nil, nil, browseButton, sw.sourcePathEntry)

	form := container.New(layout.NewFormLayout(),
		container.NewVBox(pathLabel, pathHelp),
		pathContainer,

		container.NewVBox(sheetLabel, sheetHelp),
		sw.sheetEntry,
	)

	content := container.NewVBox(
		widget.NewLabel("Planilha de agendamentos"),
		widget.NewSeparator(),
		form,
	)

	return container.NewPadded(container.NewVScroll(content))
}
