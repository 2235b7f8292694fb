package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"log"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Global audio context singleton
var (
	globalAudioCtx     *oto.Context
	globalAudioCtxOnce sync.Once
	audioCtxReady      bool
)

// The synthesized chime uses one fixed format. The hardware context can only
// be opened once; whichever sound plays first decides the context format.
const (
	chimeSampleRate = 44100
	chimeChannels   = 1
)

// Player tracks one in-flight playback so it can be stopped early.
type Player struct {
	stopChan chan struct{}
	player   *oto.Player
	stopped  bool
	mu       sync.Mutex
}

// wavFormat holds WAV file format information
type wavFormat struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// initContext initializes the global audio context once
func initContext(sampleRate, channels int) {
	globalAudioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			log.Printf("Failed to initialize audio context: %v", err)
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalAudioCtx = ctx
		audioCtxReady = true
		log.Println("Audio context initialized successfully")
	})
}

// PlayWAV plays the given WAV data once and returns a Player for control.
// Returns an error when the data cannot be parsed or the audio device is
// unavailable; the caller logs and moves on.
func PlayWAV(wavData []byte) (*Player, error) {
	format, audioData, err := parseWAV(wavData)
	if err != nil {
		return nil, err
	}

	initContext(format.SampleRate, format.Channels)
	if !audioCtxReady || globalAudioCtx == nil {
		return nil, errors.New("audio context not ready")
	}

	return playPCM(audioData), nil
}

// PlayChime synthesizes and plays a short two-tone alert chime. The overdue
// variant is lower and longer than the approaching one.
func PlayChime(overdue bool) (*Player, error) {
	initContext(chimeSampleRate, chimeChannels)
	if !audioCtxReady || globalAudioCtx == nil {
		return nil, errors.New("audio context not ready")
	}

	var pcm []byte
	if overdue {
		pcm = append(tone(440, 400*time.Millisecond), tone(330, 600*time.Millisecond)...)
	} else {
		pcm = append(tone(660, 250*time.Millisecond), tone(880, 250*time.Millisecond)...)
	}
	return playPCM(pcm), nil
}

func playPCM(audioData []byte) *Player {
	p := &Player{
		stopChan: make(chan struct{}),
	}

	// Play the sound in a goroutine so it doesn't block
	go func() {
		p.player = globalAudioCtx.NewPlayer(bytes.NewReader(audioData))
		p.player.Play()

		// Wait for the sound to finish playing or stop signal
		for p.player.IsPlaying() {
			select {
			case <-p.stopChan:
				p.player.Pause()
				p.player.Close()
				return
			case <-time.After(10 * time.Millisecond):
				// Continue checking
			}
		}

		if err := p.player.Close(); err != nil {
			log.Printf("Failed to close audio player: %v", err)
		}
	}()

	return p
}

// Stop stops the audio playback
func (p *Player) Stop() {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.stopped {
		p.stopped = true
		close(p.stopChan)

		if p.player != nil {
			p.player.Pause()
		}
	}
}

// tone renders a sine wave as signed 16-bit little-endian mono PCM, with a
// short linear fade-out so consecutive tones don't click.
func tone(freq float64, dur time.Duration) []byte {
	samples := int(float64(chimeSampleRate) * dur.Seconds())
	fade := chimeSampleRate / 50
	out := make([]byte, 0, samples*2)
	for i := 0; i < samples; i++ {
		amp := 0.4
		if left := samples - i; left < fade {
			amp *= float64(left) / float64(fade)
		}
		v := int16(amp * math.MaxInt16 * math.Sin(2*math.Pi*freq*float64(i)/chimeSampleRate))
		out = append(out, byte(v), byte(v>>8))
	}
	return out
}

// parseWAV parses a WAV file and returns the format and audio data
func parseWAV(data []byte) (*wavFormat, []byte, error) {
	reader := bytes.NewReader(data)

	// Read RIFF header
	riff := make([]byte, 4)
	if _, err := reader.Read(riff); err != nil {
		return nil, nil, err
	}

	// Skip file size
	reader.Seek(4, io.SeekCurrent)

	// Read WAVE header
	wave := make([]byte, 4)
	if _, err := reader.Read(wave); err != nil {
		return nil, nil, err
	}

	format := &wavFormat{}
	var dataStart int64
	var dataSize uint32

	// Read chunks
	for {
		chunkID := make([]byte, 4)
		if _, err := reader.Read(chunkID); err != nil {
			if err == io.EOF {
				break
			}
			return nil, nil, err
		}

		var chunkSize uint32
		if err := binary.Read(reader, binary.LittleEndian, &chunkSize); err != nil {
			return nil, nil, err
		}

		chunkIDStr := string(chunkID)

		if chunkIDStr == "fmt " {
			// Read format chunk
			var audioFormat uint16
			binary.Read(reader, binary.LittleEndian, &audioFormat)

			var numChannels uint16
			binary.Read(reader, binary.LittleEndian, &numChannels)
			format.Channels = int(numChannels)

			var sampleRate uint32
			binary.Read(reader, binary.LittleEndian, &sampleRate)
			format.SampleRate = int(sampleRate)

			// Skip byte rate and block align
			reader.Seek(6, io.SeekCurrent)

			var bitsPerSample uint16
			binary.Read(reader, binary.LittleEndian, &bitsPerSample)
			format.BitDepth = int(bitsPerSample)

			// Skip any extra format bytes
			remaining := chunkSize - 16
			if remaining > 0 {
				reader.Seek(int64(remaining), io.SeekCurrent)
			}
		} else if chunkIDStr == "data" {
			// Found data chunk
			dataStart, _ = reader.Seek(0, io.SeekCurrent)
			dataSize = chunkSize
			break
		} else {
			// Skip unknown chunk
			reader.Seek(int64(chunkSize), io.SeekCurrent)
		}
	}

	if dataSize == 0 {
		return nil, nil, errors.New("WAV data chunk not found")
	}

	// Read audio data
	audioData := make([]byte, dataSize)
	reader.Seek(dataStart, io.SeekStart)
	reader.Read(audioData)

	return format, audioData, nil
}
