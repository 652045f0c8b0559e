package tunable

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Tunable is a velocity-style constant that the periodic tasks re-read every
// cycle, so a change takes effect on the next cycle without a restart.
type Tunable struct {
	Name  string
	Value int64
	Min   int64
	Max   int64

	log logrus.FieldLogger
}

func (t *Tunable) Set(v int) {
	nv := t.clamp(int64(v))
	atomic.StoreInt64(&t.Value, nv)
	t.log.WithField("tunable", t.Name).Infof("Tunable = %d", nv)
}

func (t *Tunable) clamp(v int64) int64 {
	if v < t.Min {
		return t.Min
	} else if v > t.Max {
		return t.Max
	}
	return v
}

func (t *Tunable) Add(delta int) {
	t.Set(t.Get() + delta)
}

func (t *Tunable) Get() int {
	return int(atomic.LoadInt64(&t.Value))
}

type Tunables struct {
	All []*Tunable
	Log logrus.FieldLogger
}

// Create registers a new tunable clamped to [min, max].  The starting value
// is clamped too.
func (t *Tunables) Create(name string, value, min, max int) *Tunable {
	log := t.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	newTunable := &Tunable{
		Name: name,
		Min:  int64(min),
		Max:  int64(max),
		log:  log,
	}
	newTunable.Value = newTunable.clamp(int64(value))
	t.All = append(t.All, newTunable)
	return newTunable
}

func (t *Tunables) Find(name string) *Tunable {
	for _, tu := range t.All {
		if tu.Name == name {
			return tu
		}
	}
	return nil
}
