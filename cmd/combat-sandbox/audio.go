package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/vi-fighter/combat"
)

// AudioCues plays a short synthesized tone on combat events,
// following main.go's initAudio/playHitSound speaker+generators
// pattern.
type AudioCues struct {
	sampleRate beep.SampleRate
}

func NewAudioCues() (*AudioCues, error) {
	sampleRate := beep.SampleRate(44100)
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &AudioCues{sampleRate: sampleRate}, nil
}

func (a *AudioCues) Close() {
	speaker.Close()
}

// MaybePlay plays a tone for event types worth cueing; silently
// ignores the rest.
func (a *AudioCues) MaybePlay(t combat.CombatEventType) {
	var freq float64
	switch t {
	case combat.OnHit:
		freq = 880
	case combat.OnGuardBreak:
		freq = 440
	case combat.OnDeath:
		freq = 220
	default:
		return
	}

	duration := a.sampleRate.N(50 * time.Millisecond)
	sine, err := generators.SineTone(a.sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(duration, sine))
}
