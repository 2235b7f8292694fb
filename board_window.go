package main

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/rollout-board/pkg/board"
	"github.com/borgmon/rollout-board/pkg/deadline"
	"github.com/borgmon/rollout-board/pkg/models"
	"github.com/borgmon/rollout-board/pkg/schedule"
)

var weekdayNames = [5]string{"Segunda", "Terça", "Quarta", "Quinta", "Sexta"}

// BoardWindow is the always-on roster display: header with live clock, week
// navigation, the alert banner and the Monday-Friday grid (or the single-day
// focus view).
type BoardWindow struct {
	window fyne.Window
	board  *board.Board

	clockLabel  *widget.Label
	weekLabel   *widget.Label
	weekSelect  *widget.Select
	weekButton  *widget.Button
	dayButton   *widget.Button
	approaching *widget.Label
	overdue     *widget.Label
	content     *fyne.Container

	onSettings func()
}

func NewBoardWindow(app fyne.App, b *board.Board, onSettings func()) *BoardWindow {
	bw := &BoardWindow{
		board:      b,
		onSettings: onSettings,
	}

	bw.window = app.NewWindow("Planner Semanal")
	bw.window.SetFullScreen(true)
	bw.buildUI()
	bw.bindKeys()

	return bw
}

func (bw *BoardWindow) buildUI() {
	title := canvas.NewText("Planner Semanal", nil)
	title.TextSize = 32
	title.TextStyle = fyne.TextStyle{Bold: true}

	bw.clockLabel = widget.NewLabel("")
	bw.clockLabel.TextStyle = fyne.TextStyle{Bold: true}

	prevButton := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		bw.board.OffsetWeek(-1)
		bw.Refresh()
	})
	nextButton := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
		bw.board.OffsetWeek(1)
		bw.Refresh()
	})

	bw.weekButton = widget.NewButton("Semana", func() {
		bw.board.SetView(board.ViewWeek)
		bw.Refresh()
	})
	bw.dayButton = widget.NewButton("Hoje", func() {
		bw.board.SetView(board.ViewDay)
		bw.Refresh()
	})

	bw.weekSelect = widget.NewSelect(nil, func(selected string) {
		var week, year int
		if _, err := fmt.Sscanf(selected, "Sem %d/%d", &week, &year); err == nil {
			y, w := bw.board.SelectedWeek()
			if y != year || w != week {
				bw.board.SetWeek(year, week)
				bw.Refresh()
			}
		}
	})

	bw.weekLabel = widget.NewLabel("")

	bw.approaching = widget.NewLabel("")
	bw.approaching.Importance = widget.WarningImportance
	bw.approaching.TextStyle = fyne.TextStyle{Bold: true}
	bw.approaching.Hide()

	bw.overdue = widget.NewLabel("")
	bw.overdue.Importance = widget.DangerImportance
	bw.overdue.TextStyle = fyne.TextStyle{Bold: true}
	bw.overdue.Hide()

	settingsButton := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		if bw.onSettings != nil {
			bw.onSettings()
		}
	})
	settingsButton.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil,
		container.NewHBox(title),
		container.NewHBox(prevButton, nextButton, bw.clockLabel, settingsButton),
	)

	controls := container.NewBorder(nil, nil,
		container.NewHBox(bw.weekButton, bw.dayButton, bw.weekLabel),
		bw.weekSelect,
	)

	banner := container.NewVBox(bw.approaching, bw.overdue)

	bw.content = container.NewStack()

	top := container.NewVBox(header, controls, banner, widget.NewSeparator())
	bw.window.SetContent(container.NewBorder(top, nil, nil, nil, bw.content))
}

func (bw *BoardWindow) bindKeys() {
	bw.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyLeft:
			bw.board.OffsetWeek(-1)
			bw.Refresh()
		case fyne.KeyRight:
			bw.board.OffsetWeek(1)
			bw.Refresh()
		case fyne.KeyW:
			bw.board.SetView(board.ViewWeek)
			bw.Refresh()
		case fyne.KeyH:
			bw.board.SetView(board.ViewDay)
			bw.Refresh()
		case fyne.KeyS:
			if bw.onSettings != nil {
				bw.onSettings()
			}
		}
	})
}

// Refresh rebuilds the whole display from the board state. Called after week
// or view changes and after every dataset reload.
func (bw *BoardWindow) Refresh() {
	if !bw.board.HasData() {
		errLabel := widget.NewLabel("Erro ao carregar a planilha de agendamentos.")
		errLabel.Importance = widget.DangerImportance
		errLabel.Alignment = fyne.TextAlignCenter
		bw.content.Objects = []fyne.CanvasObject{container.NewCenter(errLabel)}
		bw.content.Refresh()
		return
	}

	bw.refreshWeekControls()

	now := time.Now()
	if bw.board.View() == board.ViewDay {
		bw.content.Objects = []fyne.CanvasObject{bw.buildDayView(now)}
	} else {
		bw.content.Objects = []fyne.CanvasObject{bw.buildWeekGrid(now)}
	}
	bw.content.Refresh()
	bw.RefreshBanner()
}

func (bw *BoardWindow) refreshWeekControls() {
	year, week := bw.board.SelectedWeek()
	monday, friday := schedule.MondayFriday(year, week)
	bw.weekLabel.SetText(fmt.Sprintf("%s – %s  •  Sem %02d/%d",
		monday.Format("02/01/2006"), friday.Format("02/01/2006"), week, year))

	options := make([]string, 0)
	selected := ""
	for _, ref := range bw.board.Weeks() {
		opt := fmt.Sprintf("Sem %02d/%d", ref.Week, ref.Year)
		options = append(options, opt)
		if ref.Year == year && ref.Week == week {
			selected = opt
		}
	}
	bw.weekSelect.Options = options
	bw.weekSelect.Selected = selected
	bw.weekSelect.Refresh()

	if bw.board.View() == board.ViewDay {
		bw.weekButton.Importance = widget.MediumImportance
		bw.dayButton.Importance = widget.HighImportance
	} else {
		bw.weekButton.Importance = widget.HighImportance
		bw.dayButton.Importance = widget.MediumImportance
	}
	bw.weekButton.Refresh()
	bw.dayButton.Refresh()
}

func (bw *BoardWindow) buildWeekGrid(now time.Time) fyne.CanvasObject {
	year, week := bw.board.SelectedWeek()
	monday, _ := schedule.MondayFriday(year, week)
	byDay := bw.board.WeekEntries()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	columns := make([]fyne.CanvasObject, 0, 5)
	for i := 0; i < 5; i++ {
		date := monday.AddDate(0, 0, i)
		columns = append(columns, bw.dayColumn(weekdayNames[i], date, byDay[i], date.Equal(today), now))
	}
	return container.NewGridWithColumns(5, columns...)
}

func (bw *BoardWindow) dayColumn(name string, date time.Time, entries []models.Entry, isToday bool, now time.Time) fyne.CanvasObject {
	header := widget.NewLabel(fmt.Sprintf("%s  %s", name, date.Format("02/01")))
	header.TextStyle = fyne.TextStyle{Bold: true}
	header.Alignment = fyne.TextAlignCenter
	if isToday {
		header.Importance = widget.HighImportance
	}

	cards := container.NewVBox()
	if len(entries) == 0 {
		empty := widget.NewLabel("Sem compromissos")
		empty.Importance = widget.LowImportance
		cards.Add(empty)
	}
	for _, e := range entries {
		cards.Add(bw.entryCard(e, now))
	}

	return container.NewBorder(header, nil, nil, nil, container.NewVScroll(cards))
}

func (bw *BoardWindow) buildDayView(now time.Time) fyne.CanvasObject {
	idx, date := bw.board.FocusDay()
	entries := bw.board.WeekEntries()[idx]

	title := canvas.NewText(weekdayNames[idx], nil)
	title.TextSize = 28
	title.TextStyle = fyne.TextStyle{Bold: true}

	dateLabel := widget.NewLabel(date.Format("02/01/2006"))

	cards := container.NewVBox()
	if len(entries) == 0 {
		empty := widget.NewLabel("Sem compromissos para hoje.")
		empty.Importance = widget.LowImportance
		cards.Add(empty)
	}
	for _, e := range entries {
		cards.Add(bw.entryCard(e, now))
	}

	return container.NewBorder(
		container.NewHBox(title, dateLabel),
		nil, nil, nil,
		container.NewVScroll(cards),
	)
}

func (bw *BoardWindow) entryCard(e models.Entry, now time.Time) fyne.CanvasObject {
	name := widget.NewLabel(e.DisplayName())
	name.TextStyle = fyne.TextStyle{Bold: true}

	timeText := "--:--"
	if e.HasTime() {
		timeText = e.Time.String()
	}
	timeLabel := widget.NewLabel(timeText)

	rows := container.NewVBox(container.NewBorder(nil, nil, name, timeLabel))

	units := make([]string, 0, 2)
	if e.UnitPrimary != "" {
		units = append(units, e.UnitPrimary)
	}
	if e.UnitSecondary != "" {
		units = append(units, e.UnitSecondary)
	}
	if len(units) > 0 {
		unitLabel := widget.NewLabel(strings.Join(units, " • "))
		unitLabel.Importance = widget.MediumImportance
		rows.Add(unitLabel)
	}

	if tracker := bw.board.Tracker(e.DisplayName()); tracker != nil {
		countdown := widget.NewLabel("Tempo até entrega: " + tracker.DisplayText(now))
		countdown.TextStyle = fyne.TextStyle{Bold: true}
		switch tracker.Status() {
		case deadline.StatusOverdue:
			countdown.Importance = widget.DangerImportance
		case deadline.StatusWarning:
			countdown.Importance = widget.WarningImportance
		default:
			countdown.Importance = widget.SuccessImportance
		}
		rows.Add(countdown)
	}

	rows.Add(widget.NewSeparator())
	return rows
}

// RefreshClock updates the header clock, driven by the 1-second tick.
func (bw *BoardWindow) RefreshClock(now time.Time) {
	bw.clockLabel.SetText(now.Format("02/01 • 15:04:05"))
}

// RefreshCountdowns redraws the live countdown texts and the banner, driven
// by the deadline tick. Cheaper than a full Refresh but currently rebuilds
// the same containers; kept separate so the grid layout work stays off the
// 1-second clock path.
func (bw *BoardWindow) RefreshCountdowns() {
	bw.Refresh()
}

// RefreshBanner updates the approaching/overdue strips from the aggregator
// sets.
func (bw *BoardWindow) RefreshBanner() {
	approaching := bw.board.Approaching()
	overdue := bw.board.Overdue()

	if len(approaching) > 0 {
		bw.approaching.SetText("Prazo em 15 min: " + strings.Join(approaching, ", "))
		bw.approaching.Show()
	} else {
		bw.approaching.Hide()
	}

	if len(overdue) > 0 {
		bw.overdue.SetText("Prazo encerrado: " + strings.Join(overdue, ", "))
		bw.overdue.Show()
	} else {
		bw.overdue.Hide()
	}
}

func (bw *BoardWindow) Show() {
	bw.window.Show()
}
