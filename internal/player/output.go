package player

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// Output is the audio device an engine plays into.
type Output interface {
	// Init opens the device on first use and returns its sample rate.
	Init(sr beep.SampleRate) (beep.SampleRate, error)
	Play(s beep.Streamer)
	// Lock and Unlock guard streamers attached with Play.
	Lock()
	Unlock()
}

// speakerOutput is the process-wide beep speaker. The speaker is initialized
// once, at the sample rate of the first source; later sources are resampled.
type speakerOutput struct {
	once sync.Once
	rate beep.SampleRate
	err  error
}

var defaultOutput = &speakerOutput{}

func (o *speakerOutput) Init(sr beep.SampleRate) (beep.SampleRate, error) {
	o.once.Do(func() {
		o.rate = sr
		o.err = speaker.Init(sr, sr.N(time.Second/10))
	})
	return o.rate, o.err
}

func (*speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (*speakerOutput) Lock()                { speaker.Lock() }
func (*speakerOutput) Unlock()              { speaker.Unlock() }
