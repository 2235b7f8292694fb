package main

import (
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/borgmon/rollout-board/pkg/board"
	"github.com/borgmon/rollout-board/pkg/deadline"
	"github.com/borgmon/rollout-board/pkg/source"
)

type RolloutBoard struct {
	app            fyne.App
	config         *Config
	board          *board.Board
	window         *BoardWindow
	settingsWindow *SettingsWindow
	done           chan struct{}
}

func main() {
	rb := &RolloutBoard{
		app:  app.New(),
		done: make(chan struct{}),
	}

	if err := rb.initialize(); err != nil {
		log.Fatal(err)
	}

	rb.run()
}

func (rb *RolloutBoard) initialize() error {
	rb.config = loadConfig(rb.app)

	// Sync autostart state with config on startup
	if err := setupAutostart(rb.config.AutoStart); err != nil {
		log.Printf("Warning: failed to setup autostart: %v", err)
	}

	saveConfig(rb.app, rb.config)

	if rb.config.NeedsConfiguration() {
		log.Println("No schedule sources configured; the board will show an empty panel")
	}

	sink := newSoundSink(func() string { return rb.config.AlertSoundPath })
	rb.board = board.New(rb.buildSources(), deadline.SystemClock(), sink)

	// Populate before the window is first drawn. A failed first load is not
	// fatal, the reload tick keeps retrying and the window shows the error
	// panel in the meantime.
	if err := rb.board.Reload(); err != nil {
		log.Printf("[RELOAD] initial load failed: %v", err)
	}

	rb.window = NewBoardWindow(rb.app, rb.board, rb.showSettings)
	rb.window.Refresh()
	rb.window.Show()

	rb.startTicks()

	return nil
}

func (rb *RolloutBoard) buildSources() []board.Source {
	sources := []board.Source{}
	if rb.config.SourcePath != "" {
		sources = append(sources, source.NewXLSXSource(rb.config.SourcePath, rb.config.SheetName))
	}
	for _, s := range rb.config.ICalSources {
		if !s.Validate() {
			continue
		}
		sources = append(sources, s)
	}
	return sources
}

func (rb *RolloutBoard) startTicks() {
	go rb.tickLoop(rb.config.DeadlineTickSeconds, rb.config.ReloadSeconds, rb.done)
}

// tickLoop drives everything periodic from a single goroutine so a slow
// reload can never race a deadline sweep. UI work is handed to the fyne
// thread via fyne.Do.
func (rb *RolloutBoard) tickLoop(deadlineSeconds, reloadSeconds int, done chan struct{}) {
	clockTicker := time.NewTicker(1 * time.Second)
	deadlineTicker := time.NewTicker(time.Duration(deadlineSeconds) * time.Second)
	reloadTicker := time.NewTicker(time.Duration(reloadSeconds) * time.Second)
	defer clockTicker.Stop()
	defer deadlineTicker.Stop()
	defer reloadTicker.Stop()

	for {
		select {
		case now := <-clockTicker.C:
			fyne.Do(func() {
				rb.window.RefreshClock(now)
			})

		case now := <-deadlineTicker.C:
			changed := rb.board.TickDeadlines(now)
			fyne.Do(func() {
				if changed {
					rb.window.Refresh()
				} else {
					rb.window.RefreshCountdowns()
				}
			})

		case <-reloadTicker.C:
			if err := rb.board.Reload(); err != nil {
				log.Printf("[RELOAD] keeping previous dataset: %v", err)
				continue
			}
			fyne.Do(func() {
				rb.window.Refresh()
			})

		case <-done:
			return
		}
	}
}

func (rb *RolloutBoard) showSettings() {
	if rb.settingsWindow != nil && rb.settingsWindow.window != nil {
		rb.settingsWindow.window.RequestFocus()
		rb.settingsWindow.window.Show()
		return
	}

	rb.settingsWindow = NewSettingsWindow(rb.app, rb.config, func(newConfig *Config) {
		rb.config = newConfig
		rb.board.SetSources(rb.buildSources())
		rb.restartTicks()

		if err := rb.board.Reload(); err != nil {
			log.Printf("[RELOAD] after settings change: %v", err)
		}
		fyne.Do(func() {
			rb.window.Refresh()
		})
	})

	rb.settingsWindow.window.SetOnClosed(func() {
		rb.settingsWindow = nil
	})

	rb.settingsWindow.Show()
}

// restartTicks replaces the tick goroutine so new cadences take effect.
func (rb *RolloutBoard) restartTicks() {
	close(rb.done)
	rb.done = make(chan struct{})
	rb.startTicks()
}

func (rb *RolloutBoard) run() {
	rb.app.Lifecycle().SetOnStopped(func() {
		close(rb.done)
	})
	rb.app.Run()
}
