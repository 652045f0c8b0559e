package sound

import (
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/sirupsen/logrus"
)

// Player plays mode cues one at a time; a new cue cuts off the previous one.
type Player struct {
	sounds chan string
	log    logrus.FieldLogger
	wg     sync.WaitGroup
}

// New opens the speaker.  If that fails every cue is logged instead.
func New(log logrus.FieldLogger) *Player {
	p := newPlayer(log)
	go p.loop(true)
	return p
}

// Silent never touches the speaker.
func Silent(log logrus.FieldLogger) *Player {
	p := newPlayer(log)
	go p.loop(false)
	return p
}

func newPlayer(log logrus.FieldLogger) *Player {
	if log == nil {
		log = logrus.StandardLogger()
	}
	p := &Player{
		sounds: make(chan string, 1),
		log:    log,
	}
	p.wg.Add(1)
	return p
}

// Play queues a wav file.  It never blocks; a cue is dropped if one is
// already waiting.
func (p *Player) Play(path string) {
	if path == "" {
		return
	}
	select {
	case p.sounds <- path:
	default:
		p.log.Debugf("Sound: busy, dropping %s", path)
	}
}

func (p *Player) Close() {
	close(p.sounds)
	p.wg.Wait()
}

func (p *Player) drain() {
	for s := range p.sounds {
		p.log.Infof("Sound: unable to play %s", s)
	}
}

func (p *Player) loop(useSpeaker bool) {
	defer p.wg.Done()
	if !useSpeaker {
		p.drain()
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.log.Errorf("Sound: speaker failed: %v", r)
			p.drain()
		}
	}()

	sampleRate := beep.SampleRate(44100)
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/5)); err != nil {
		p.log.WithError(err).Error("Sound: failed to open speaker")
		p.drain()
		return
	}

	var ctrl *beep.Ctrl
	var s beep.StreamSeekCloser
	defer func() {
		if s != nil {
			s.Close()
		}
	}()
	for soundToPlay := range p.sounds {
		if ctrl != nil {
			speaker.Lock()
			ctrl.Paused = true
			ctrl.Streamer = nil
			speaker.Unlock()
			ctrl = nil
		}
		if s != nil {
			s.Close()
			s = nil
		}

		f, err := os.Open(soundToPlay)
		if err != nil {
			p.log.WithError(err).Error("Sound: failed to open sound")
			continue
		}
		s, _, err = wav.Decode(f)
		if err != nil {
			p.log.WithError(err).Error("Sound: failed to decode sound")
			f.Close()
			s = nil
			continue
		}
		ctrl = &beep.Ctrl{Streamer: s}
		speaker.Play(ctrl)
	}
}
