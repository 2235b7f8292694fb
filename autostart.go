package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/emersion/go-autostart"
)

// setupAutostart registers or removes the board from the OS login items so a
// TV box brings the roster back up after a power cycle.
func setupAutostart(enable bool) error {
	// Get the executable path
	execPath, err := os.Executable()
	if err != nil {
		return err
	}

	// Resolve symlinks if any
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return err
	}

	app := &autostart.App{
		Name:        "rollout-board",
		DisplayName: "Rollout Board",
		Exec:        []string{execPath},
	}

	if enable {
		if !app.IsEnabled() {
			if err := app.Enable(); err != nil {
				log.Printf("Failed to enable autostart: %v", err)
				return err
			}
			log.Println("Autostart enabled")
		}
	} else {
		if app.IsEnabled() {
			if err := app.Disable(); err != nil {
				log.Printf("Failed to disable autostart: %v", err)
				return err
			}
			log.Println("Autostart disabled")
		}
	}

	return nil
}
