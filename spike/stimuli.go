// Copyright (c) 2025, The Spikenet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"math"
	"math/rand"

	"github.com/goki/ki/kit"
)

///////////////////////////////////////////////////////////////////////
//  stimuli.go converts declarative stimulus descriptions into scheduled
//  spike events over time

// StimModes are the available kinds of time-driven spike generators
type StimModes int32

//go:generate stringer -type=StimModes

var KiT_StimModes = kit.Enums.AddEnum(StimModesN, kit.NotBitFlag, nil)

func (ev StimModes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *StimModes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// ManualPulse fires exactly once, at the tick recorded when Fire was called
	ManualPulse StimModes = iota

	// Poisson fires at exponentially distributed inter-spike intervals from
	// a deterministic seeded stream, from Start until Stop (or indefinitely)
	Poisson

	// SpikeTrain fires at each explicit millisecond offset in Times, and if
	// Looped repeats with period equal to the maximum offset
	SpikeTrain

	// CurrentStep approximates sustained current injection by emitting
	// repeated pulses of weight Amp at a fixed interval derived from Rate,
	// between Start and Stop
	CurrentStep

	StimModesN
)

// StimSpec is the declarative description of one stimulus generator.
// Offsets are in milliseconds relative to the Fire call; the runner's Dt
// converts them to ticks.
type StimSpec struct {

	// which generator to run
	Mode StimModes `desc:"which generator to run"`

	// weight of each emitted spike event -- sign selects the conductance
	// it drives on the target, like any other event
	Amp float32 `def:"1" desc:"weight of each emitted spike event"`

	// mean spike rate in Hz (Poisson), or pulse rate in Hz (CurrentStep)
	Rate float64 `desc:"mean spike rate in Hz (Poisson) or pulse rate in Hz (CurrentStep)"`

	// PRNG seed for the Poisson stream -- equal seeds give equal schedules
	Seed int64 `desc:"PRNG seed for the Poisson stream"`

	// start offset in ms from the Fire call (Poisson, CurrentStep)
	Start int `desc:"start offset in ms from the Fire call"`

	// stop offset in ms from the Fire call -- < 0 means no stop for
	// Poisson; CurrentStep clamps Stop below Start up to Start
	Stop int `def:"-1" desc:"stop offset in ms from the Fire call, < 0 = none (Poisson)"`

	// explicit spike time offsets in ms (SpikeTrain)
	Times []int `desc:"explicit spike time offsets in ms (SpikeTrain)"`

	// repeat the SpikeTrain with period equal to its maximum offset
	Looped bool `desc:"repeat the SpikeTrain with period = max offset"`
}

func (ss *StimSpec) Defaults() {
	ss.Amp = 1
	ss.Stop = -1
}

// MaxEventsPerApply caps how many events any one generator emits in a
// single Apply call, bounding the work per tick when parameters are
// misconfigured (e.g. an extreme Poisson rate).
const MaxEventsPerApply = 1024

// activeStim is the advancing cursor state of one registered generator
type activeStim struct {
	id     uint64
	target NeuronID
	mode   StimModes
	amp    float32

	// ManualPulse
	tick int

	// Poisson
	rate    float64
	rng     *rand.Rand
	nextMS  float64
	stopMS  float64
	hasStop bool

	// SpikeTrain -- times converted to ticks
	times  []int
	index  int
	base   int
	period int
	looped bool

	// CurrentStep
	startTick int
	stopTick  int
	nextTick  int
	interval  int
}

// spike.StimRunner holds the set of active spike generators, keyed by a
// caller-chosen id.  Fire registers (or replaces) a generator; Apply must
// be called once per tick, before Network.Cycle, to drain due events into
// the network's event queue.
type StimRunner struct {

	// tick duration in ms -- must match the dt passed to Network.Cycle
	Dt float32 `desc:"tick duration in ms, must match the dt passed to Network.Cycle"`

	stims []*activeStim
}

func NewStimRunner(dt float32) *StimRunner {
	if dt <= 0 {
		dt = 1
	}
	return &StimRunner{Dt: dt}
}

// Clear removes all active generators
func (sr *StimRunner) Clear() {
	sr.stims = nil
}

// Remove cancels the generator with the given id, if active
func (sr *StimRunner) Remove(id uint64) {
	out := sr.stims[:0]
	for _, st := range sr.stims {
		if st.id != id {
			out = append(out, st)
		}
	}
	sr.stims = out
}

// Active returns the ids of the currently active generators, in
// registration order
func (sr *StimRunner) Active() []uint64 {
	ids := make([]uint64, len(sr.stims))
	for i, st := range sr.stims {
		ids[i] = st.id
	}
	return ids
}

func (sr *StimRunner) toTicks(ms int) int {
	t := int(math.Round(float64(ms) / float64(sr.Dt)))
	if t < 0 {
		t = 0
	}
	return t
}

// Fire registers a generator for the given spec against the target neuron,
// anchored at the network's current tick.  Any previously active generator
// with the same id is replaced (latest wins).  Specs that cannot emit
// anything (zero Poisson rate, empty train, stop before start) register
// nothing.
func (sr *StimRunner) Fire(id uint64, target NeuronID, spec *StimSpec, net *Network) {
	sr.Remove(id)

	base := net.T
	baseMS := float64(base) * float64(sr.Dt)
	// Poisson and SpikeTrain emit unit-weight spikes unless Amp is set
	amp := spec.Amp
	if amp == 0 {
		amp = 1
	}

	switch spec.Mode {
	case ManualPulse:
		sr.stims = append(sr.stims, &activeStim{
			id: id, target: target, mode: ManualPulse, amp: spec.Amp, tick: base,
		})

	case Poisson:
		if spec.Rate <= 0 {
			return
		}
		startMS := baseMS + float64(spec.Start)
		stopMS := 0.0
		hasStop := spec.Stop >= 0
		if hasStop {
			stopMS = baseMS + float64(spec.Stop)
			if stopMS < startMS {
				return
			}
		}
		rng := rand.New(rand.NewSource(spec.Seed))
		sr.stims = append(sr.stims, &activeStim{
			id: id, target: target, mode: Poisson, amp: amp,
			rate: spec.Rate, rng: rng,
			nextMS: startMS + poissonIntervalMS(spec.Rate, rng),
			stopMS: stopMS, hasStop: hasStop,
		})

	case SpikeTrain:
		if len(spec.Times) == 0 {
			return
		}
		times := make([]int, len(spec.Times))
		period := 0
		for i, ms := range spec.Times {
			times[i] = sr.toTicks(ms)
			if times[i] > period {
				period = times[i]
			}
		}
		sr.stims = append(sr.stims, &activeStim{
			id: id, target: target, mode: SpikeTrain, amp: amp,
			times: times, base: base, period: period,
			looped: spec.Looped && period > 0,
		})

	case CurrentStep:
		startTick := base + sr.toTicks(spec.Start)
		stopTick := base + sr.toTicks(spec.Stop)
		if stopTick < startTick {
			stopTick = startTick
		}
		interval := 1
		if spec.Rate > 0 {
			interval = int(math.Round((1000 / math.Max(spec.Rate, 1e-6)) / float64(sr.Dt)))
			if interval < 1 {
				interval = 1
			}
		}
		sr.stims = append(sr.stims, &activeStim{
			id: id, target: target, mode: CurrentStep, amp: spec.Amp,
			startTick: startTick, stopTick: stopTick, nextTick: startTick,
			interval: interval,
		})
	}
}

// Apply advances every active generator up to the network's current tick,
// emitting all due spikes into the network's event queue (with delay 0, so
// they are delivered by the upcoming Cycle), and removes generators that
// have exhausted their schedule.  Call once per tick, before Network.Cycle.
func (sr *StimRunner) Apply(net *Network) {
	if len(sr.stims) == 0 {
		return
	}
	cur := net.T
	curMS := float64(cur) * float64(sr.Dt)

	out := sr.stims[:0]
	for _, st := range sr.stims {
		if !st.apply(net, cur, curMS) {
			out = append(out, st)
		}
	}
	sr.stims = out
}

// apply emits this generator's due events and returns true when exhausted
func (st *activeStim) apply(net *Network, cur int, curMS float64) bool {
	switch st.mode {
	case ManualPulse:
		if cur >= st.tick {
			net.ScheduleSpike(st.target, st.amp, 0)
			return true
		}
		return false

	case Poisson:
		events := 0
		for {
			if st.hasStop && st.nextMS > st.stopMS {
				break
			}
			if curMS < st.nextMS {
				break
			}
			net.ScheduleSpike(st.target, st.amp, 0)
			st.nextMS += poissonIntervalMS(st.rate, st.rng)
			events++
			if events >= MaxEventsPerApply {
				break
			}
		}
		return st.hasStop && curMS >= st.stopMS && st.nextMS > st.stopMS

	case SpikeTrain:
		done := false
		if st.index >= len(st.times) {
			if st.looped && st.period > 0 {
				st.index = 0
				st.base += st.period
			} else {
				done = true
			}
		}
		if !done {
			events := 0
			for {
				next := st.base + st.times[st.index]
				if cur < next {
					break
				}
				net.ScheduleSpike(st.target, st.amp, 0)
				st.index++
				if st.index >= len(st.times) {
					if !st.looped || st.period == 0 {
						break
					}
					st.index = 0
					st.base += st.period
				}
				events++
				if events >= MaxEventsPerApply {
					break
				}
			}
			done = st.index >= len(st.times) && (!st.looped || st.period == 0)
		}
		return done

	case CurrentStep:
		events := 0
		for cur >= st.nextTick && st.nextTick <= st.stopTick {
			if cur >= st.startTick {
				net.ScheduleSpike(st.target, st.amp, 0)
			}
			st.nextTick += st.interval
			events++
			if events >= MaxEventsPerApply {
				break
			}
		}
		return cur > st.stopTick
	}
	return true
}

// poissonIntervalMS draws the next exponentially distributed inter-spike
// interval in ms for the given rate in Hz
func poissonIntervalMS(rateHz float64, rng *rand.Rand) float64 {
	u := rng.Float64()
	u = math.Max(u, math.SmallestNonzeroFloat64)
	return -math.Log(u) * 1000 / math.Max(rateHz, 1e-6)
}
