// Package audio provides named sound handles for the runner.
// A terminal cannot mix audio, so one-shot sounds ring the bell on the
// session's output and looping sounds only track whether they are playing.
package audio

import (
	"io"
	"sync"
)

// Sound is a handle to a loaded sound.
type Sound interface {
	Name() string
	Play()
	Stop()
	Playing() bool
	Looping() bool
}

// Bank holds the sounds loaded for one output.
type Bank struct {
	mu     sync.Mutex
	out    io.Writer
	sounds map[string]*bellSound
}

// NewBank creates a sound bank writing bells to out.
// A nil writer yields a silent bank whose handles still track state.
func NewBank(out io.Writer) *Bank {
	return &Bank{
		out:    out,
		sounds: make(map[string]*bellSound),
	}
}

// Load registers a sound under name and returns its handle.
// Loading the same name twice returns the existing handle.
func (b *Bank) Load(name string, loop bool) Sound {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s, ok := b.sounds[name]; ok {
		return s
	}
	s := &bellSound{bank: b, name: name, loop: loop}
	b.sounds[name] = s
	return s
}

// Get returns the sound registered under name, or nil if it was never loaded.
func (b *Bank) Get(name string) Sound {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.sounds[name]
	if !ok {
		return nil
	}
	return s
}

// StopAll stops every looping sound in the bank.
func (b *Bank) StopAll() {
	b.mu.Lock()
	sounds := make([]*bellSound, 0, len(b.sounds))
	for _, s := range b.sounds {
		sounds = append(sounds, s)
	}
	b.mu.Unlock()

	for _, s := range sounds {
		s.Stop()
	}
}

func (b *Bank) ring() {
	if b.out == nil {
		return
	}
	//nolint:errcheck // Best-effort bell, the game continues regardless
	b.out.Write([]byte{'\a'})
}

type bellSound struct {
	bank    *Bank
	name    string
	loop    bool
	mu      sync.Mutex
	playing bool
}

func (s *bellSound) Name() string  { return s.name }
func (s *bellSound) Looping() bool { return s.loop }

// Play rings the bell for one-shot sounds; loops are marked as playing.
func (s *bellSound) Play() {
	if s.loop {
		s.mu.Lock()
		s.playing = true
		s.mu.Unlock()
		return
	}
	s.bank.ring()
}

func (s *bellSound) Stop() {
	s.mu.Lock()
	s.playing = false
	s.mu.Unlock()
}

func (s *bellSound) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}
