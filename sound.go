package main

import (
	"fmt"
	"log"
	"os"

	"github.com/borgmon/rollout-board/pkg/audio"
	"github.com/borgmon/rollout-board/pkg/deadline"
)

// soundSink plays the alert chime when a deadline tracker crosses a
// threshold. A configured WAV file takes precedence over the built-in chime.
// Playback failure is reported to the caller, which logs it and moves on;
// the alert is never replayed.
type soundSink struct {
	soundPath func() string // read per alert so settings changes apply live
}

func newSoundSink(soundPath func() string) *soundSink {
	return &soundSink{soundPath: soundPath}
}

func (s *soundSink) Notify(sig deadline.Signal) error {
	log.Printf("[ALERT] %s: %s", sig.Kind, sig.Name)

	if path := s.soundPath(); path != "" {
		wavData, err := os.ReadFile(path)
		if err == nil {
			if _, err := audio.PlayWAV(wavData); err == nil {
				return nil
			} else {
				log.Printf("Failed to play %s, falling back to chime: %v", path, err)
			}
		} else {
			log.Printf("Failed to read %s, falling back to chime: %v", path, err)
		}
	}

	if _, err := audio.PlayChime(sig.Kind == deadline.SignalOverdue); err != nil {
		return fmt.Errorf("alert chime failed: %w", err)
	}
	return nil
}
