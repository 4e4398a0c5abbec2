// Package audio plays the looping alert sound.
package audio

import "context"

// Player creates a sound and starts playing it in a loop.
type Player interface {
	Play(ctx context.Context) (Sound, error)
}

// Sound is a playing sound. Stop must come before Release; both are safe
// to call more than once.
type Sound interface {
	Stop() error
	Release() error
}

// NopPlayer stands in when sound is disabled.
type NopPlayer struct{}

func (NopPlayer) Play(ctx context.Context) (Sound, error) {
	return nopSound{}, nil
}

type nopSound struct{}

func (nopSound) Stop() error    { return nil }
func (nopSound) Release() error { return nil }
