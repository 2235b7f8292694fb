package main

import (
	"encoding/json"

	"fyne.io/fyne/v2"

	"github.com/borgmon/rollout-board/pkg/source"
)

const (
	defaultDeadlineTickSeconds = 30
	defaultReloadSeconds       = 300
)

type Config struct {
	AutoStart           bool                `json:"auto_start"`
	SourcePath          string              `json:"source_path"`           // rollout workbook path
	SheetName           string              `json:"sheet_name"`            // worksheet with the schedule
	ICalSources         []source.ICalSource `json:"ical_sources"`          // optional calendar feeds
	DeadlineTickSeconds int                 `json:"deadline_tick_seconds"` // countdown/alert cadence
	ReloadSeconds       int                 `json:"reload_seconds"`        // dataset reconciliation cadence
	AlertSoundPath      string              `json:"alert_sound_path"`      // optional WAV; empty = built-in chime
}

func loadConfig(app fyne.App) *Config {
	prefs := app.Preferences()

	config := &Config{
		AutoStart:           prefs.BoolWithFallback("auto_start", false),
		SourcePath:          prefs.String("source_path"),
		SheetName:           prefs.StringWithFallback("sheet_name", source.DefaultSheet),
		DeadlineTickSeconds: prefs.IntWithFallback("deadline_tick_seconds", defaultDeadlineTickSeconds),
		ReloadSeconds:       prefs.IntWithFallback("reload_seconds", defaultReloadSeconds),
		AlertSoundPath:      prefs.String("alert_sound_path"),
	}

	// Load iCal sources from JSON string
	icalSourcesJSON := prefs.String("ical_sources")
	if icalSourcesJSON != "" {
		if err := json.Unmarshal([]byte(icalSourcesJSON), &config.ICalSources); err != nil {
			config.ICalSources = []source.ICalSource{}
		}
	} else {
		config.ICalSources = []source.ICalSource{}
	}

	if config.DeadlineTickSeconds < 1 {
		config.DeadlineTickSeconds = 1
	}
	if config.ReloadSeconds < 1 {
		config.ReloadSeconds = defaultReloadSeconds
	}

	return config
}

func saveConfig(app fyne.App, config *Config) {
	prefs := app.Preferences()

	prefs.SetBool("auto_start", config.AutoStart)
	prefs.SetString("source_path", config.SourcePath)
	prefs.SetString("sheet_name", config.SheetName)
	prefs.SetInt("deadline_tick_seconds", config.DeadlineTickSeconds)
	prefs.SetInt("reload_seconds", config.ReloadSeconds)
	prefs.SetString("alert_sound_path", config.AlertSoundPath)

	// Save iCal sources as JSON string
	if icalSourcesJSON, err := json.Marshal(config.ICalSources); err == nil {
		prefs.SetString("ical_sources", string(icalSourcesJSON))
	}
}

func (c *Config) NeedsConfiguration() bool {
	return c.SourcePath == "" && len(c.ICalSources) == 0
}
