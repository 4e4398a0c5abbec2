package audio

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/Rorical/Nyssa/internal/logger"
)

const (
	sampleRate = beep.SampleRate(44100)
	buzzerFreq = 880.0
	buzzOn     = 400 * time.Millisecond
	buzzOff    = 200 * time.Millisecond
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	})
	return speakerErr
}

// BeepPlayer loops an mp3 file through the system speaker, or a generated
// buzzer tone when no file is configured.
type BeepPlayer struct {
	file string
}

func NewBeepPlayer(file string) *BeepPlayer {
	return &BeepPlayer{file: file}
}

func (p *BeepPlayer) Play(ctx context.Context) (Sound, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := initSpeaker(); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	var (
		loop beep.Streamer
		err  error
	)
	if p.file != "" {
		loop, err = loopFile(p.file)
	} else {
		loop, err = buzzer()
	}
	if err != nil {
		return nil, err
	}

	ctrl := &beep.Ctrl{Streamer: loop}
	speaker.Play(ctrl)
	logger.Debug("alert sound started", "file", p.file)

	return &beepSound{ctrl: ctrl}, nil
}

// loopFile decodes the whole file once so it can restart without seeking.
func loopFile(path string) (beep.Streamer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sound: %w", err)
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode sound: %w", err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	if format.SampleRate != sampleRate {
		buffer = beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: format.NumChannels, Precision: format.Precision})
		buffer.Append(beep.Resample(4, format.SampleRate, sampleRate, streamer))
	} else {
		buffer.Append(streamer)
	}
	if buffer.Len() == 0 {
		return nil, fmt.Errorf("decode sound: %s is empty", path)
	}

	return beep.Iterate(func() beep.Streamer {
		return buffer.Streamer(0, buffer.Len())
	}), nil
}

// buzzer is the fallback alarm: an 880 Hz beep, then a short pause.
func buzzer() (beep.Streamer, error) {
	if _, err := generators.SineTone(sampleRate, buzzerFreq); err != nil {
		return nil, fmt.Errorf("buzzer tone: %w", err)
	}
	return beep.Iterate(func() beep.Streamer {
		tone, err := generators.SineTone(sampleRate, buzzerFreq)
		if err != nil {
			return nil
		}
		return beep.Seq(
			beep.Take(sampleRate.N(buzzOn), tone),
			beep.Silence(sampleRate.N(buzzOff)),
		)
	}), nil
}

type beepSound struct {
	mu       sync.Mutex
	ctrl     *beep.Ctrl
	released bool
}

func (s *beepSound) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil
	}
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
	return nil
}

func (s *beepSound) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil
	}
	speaker.Lock()
	s.ctrl.Streamer = nil
	speaker.Unlock()
	s.released = true
	logger.Debug("alert sound released")
	return nil
}
