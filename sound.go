package main

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/marisvali/cutrope/world"
)

const SampleRate = 44100

type SoundType int64

const (
	SoundCut SoundType = iota
	SoundStar
	SoundPop
	SoundWon
	SoundLost
	soundTypeCount
)

type waveform int64

const (
	waveSine waveform = iota
	waveSquare
	waveNoise
)

// oscillator generates d of a raw waveform, mono, at unity gain.
func oscillator(w waveform, freq float64, d time.Duration) []float64 {
	buf := make([]float64, int(d.Seconds()*SampleRate))
	phase := 0.0
	for i := range buf {
		switch w {
		case waveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			buf[i] = 1
			if phase >= 0.5 {
				buf[i] = -1
			}
		case waveNoise:
			buf[i] = rand.Float64()*2 - 1
		}
		phase += freq / SampleRate
		if phase >= 1 {
			phase--
		}
	}
	return buf
}

// envelope fades buf in over attack and out over release, in place.
func envelope(buf []float64, attack, release time.Duration) []float64 {
	attackSamples := int(attack.Seconds() * SampleRate)
	releaseSamples := int(release.Seconds() * SampleRate)
	releaseStart := max(len(buf)-releaseSamples, attackSamples)
	for i := range buf {
		if i < attackSamples {
			buf[i] *= float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			buf[i] *= float64(len(buf)-i) / float64(releaseSamples)
		}
	}
	return buf
}

func mix(a, b []float64, bScale float64) []float64 {
	if len(b) > len(a) {
		a = append(a, make([]float64, len(b)-len(a))...)
	}
	for i := range b {
		a[i] += b[i] * bScale
	}
	return a
}

// GenerateSound synthesizes a sound effect, mono, at unity gain.
func GenerateSound(st SoundType) []float64 {
	ms := time.Millisecond
	switch st {
	case SoundCut:
		return envelope(oscillator(waveNoise, 0, 120*ms), 5*ms, 100*ms)
	case SoundStar:
		n1 := envelope(oscillator(waveSquare, 987.77, 70*ms), 2*ms, 20*ms)
		n2 := envelope(oscillator(waveSquare, 1318.51, 180*ms), 2*ms, 150*ms)
		return append(n1, n2...)
	case SoundPop:
		return envelope(oscillator(waveSine, 600, 60*ms), 1*ms, 50*ms)
	case SoundWon:
		fund := envelope(oscillator(waveSine, 880, 600*ms), 5*ms, 550*ms)
		over := envelope(oscillator(waveSine, 1760, 600*ms), 5*ms, 300*ms)
		return mix(fund, over, 0.3/0.7)
	case SoundLost:
		return envelope(oscillator(waveSquare, 110, 400*ms), 5*ms, 300*ms)
	default:
		return nil
	}
}

// PCM turns a mono buffer into the 16 bit little endian stereo samples an
// audio.Player expects.
func PCM(buf []float64, volume float64) []byte {
	out := make([]byte, 4*len(buf))
	for i, s := range buf {
		v := int16(max(-1, min(s*volume, 1)) * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[4*i:], uint16(v))
		binary.LittleEndian.PutUint16(out[4*i+2:], uint16(v))
	}
	return out
}

// SoundForEvent says which sound, if any, goes with an event.
func SoundForEvent(e world.Event) (SoundType, bool) {
	switch e.(type) {
	case world.RopeCut:
		return SoundCut, true
	case world.StarCollected:
		return SoundStar, true
	case world.BubblePopped:
		return SoundPop, true
	case world.GameWon:
		return SoundWon, true
	case world.GameLost, world.SpikeHit:
		return SoundLost, true
	default:
		return 0, false
	}
}

// Sounds plays the effects of the game. The samples are generated once, on
// creation.
type Sounds struct {
	ctx *audio.Context
	pcm [soundTypeCount][]byte
}

func NewSounds() *Sounds {
	s := &Sounds{ctx: audio.NewContext(SampleRate)}
	for st := range soundTypeCount {
		s.pcm[st] = PCM(GenerateSound(st), 0.3)
	}
	return s
}

// Play plays the sounds of the events. A nil Sounds is silent.
func (s *Sounds) Play(events []world.Event) {
	if s == nil {
		return
	}
	for _, e := range events {
		if st, ok := SoundForEvent(e); ok {
			s.ctx.NewPlayerFromBytes(s.pcm[st]).Play()
		}
	}
}
