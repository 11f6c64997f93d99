// Copyright (c) 2025, The Spikenet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/goki/mat32"
)

// ErrInvalidID is returned by Connect when either neuron id is out of range.
var ErrInvalidID = errors.New("neuron id out of range")

// Synapse is one directed edge in a neuron's adjacency row: the target
// neuron, the connection weight, and the conduction delay in ticks.
// The sign of Wt is the sole polarity signal consumed by the Network --
// weight >= 0 drives the target's excitatory conductance, weight < 0 its
// inhibitory conductance.
type Synapse struct {
	Target NeuronID
	Wt     float32
	Delay  int32
}

// SpikeEvent is one pending delivery in the event ring buffer.
type SpikeEvent struct {
	Target NeuronID
	Wt     float32
}

// ringHeadroom is the number of extra slots allocated beyond the maximum
// delay, so that ring size always strictly exceeds every edge delay.
const ringHeadroom = 2

// spike.Network owns all neuron state, the directed weighted adjacency
// structure, and the ring buffer of pending spike events, and drives the
// per-tick update of every neuron.
//
// Determinism contract: given identical initial state, edge list and a
// fixed dt, repeated runs of Cycle produce bit-identical neuron
// trajectories.  All iteration is over slices in ascending NeuronID order;
// no map iteration influences floating-point accumulation order.
//
// Topology mutation (AddNeuron / Connect) is intended for the setup phase
// before the first Cycle.  Interleaving is legal: ScheduleSpike and Cycle
// grow the event ring as needed, preserving queued events.
type Network struct {

	// all neurons in the network, indexed by NeuronID (creation order)
	Neurons []Neuron

	// per-neuron adjacency rows of outgoing synapses -- always exactly one
	// row per neuron, possibly empty
	Adjacency [][]Synapse

	// ring buffer of pending spike events, indexed by future tick modulo
	// its length -- size it with ResizeEvents after wiring
	Events [][]SpikeEvent

	// current tick, incremented at the end of every Cycle
	T int

	// ids of the neurons that spiked on the last Cycle, ascending.
	// Read-only for callers; reused between cycles.
	Spiked []NeuronID
}

func NewNetwork() *Network {
	return &Network{}
}

// NumNeurons returns the number of neurons in the network
func (nt *Network) NumNeurons() int {
	return len(nt.Neurons)
}

func (nt *Network) ValidID(id NeuronID) bool {
	return id >= 0 && int(id) < len(nt.Neurons)
}

// AddNeuron appends a new neuron of the given kind with the given config,
// along with its (empty) adjacency row, and returns its id.
// State is initialized with Vm at VRest and zero conductances.
func (nt *Network) AddNeuron(kind NeuronKind, cfg NeuronConfig) NeuronID {
	cfg.Update()
	nrn := Neuron{Kind: kind, Cfg: cfg}
	nrn.Cfg.InitActs(&nrn)
	nt.Neurons = append(nt.Neurons, nrn)
	nt.Adjacency = append(nt.Adjacency, nil)
	return NeuronID(len(nt.Neurons) - 1)
}

// Connect appends a synapse from pre to post with the given weight and
// delay in ticks, returning ErrInvalidID if either id is out of range.
// No polarity check happens here -- the motifs package enforces sign
// contracts at composition time.
func (nt *Network) Connect(pre, post NeuronID, wt float32, delay int32) error {
	if !nt.ValidID(pre) || !nt.ValidID(post) {
		return fmt.Errorf("spike: connect %d -> %d with %d neurons: %w", pre, post, len(nt.Neurons), ErrInvalidID)
	}
	if delay < 0 {
		delay = 0
	}
	nt.Adjacency[pre] = append(nt.Adjacency[pre], Synapse{Target: post, Wt: wt, Delay: delay})
	return nil
}

// MaxDelay returns the maximum conduction delay in ticks across all edges
func (nt *Network) MaxDelay() int {
	md := 0
	for _, row := range nt.Adjacency {
		for _, sy := range row {
			if int(sy.Delay) > md {
				md = int(sy.Delay)
			}
		}
	}
	return md
}

// ResizeEvents sizes the event ring buffer from the maximum edge delay
// (in ticks) plus headroom.  Call after all edges for the run are present
// and before the first ScheduleSpike / Cycle; calling again later only
// grows the ring and preserves already-queued events.
func (nt *Network) ResizeEvents() {
	nt.resizeTo(nt.MaxDelay() + ringHeadroom)
}

// ResizeEventsDt is the variant for callers specifying edge delays in
// real-time units: the maximum delay is treated as milliseconds and
// converted to ticks via ceil(delay/dt) before adding headroom.
func (nt *Network) ResizeEventsDt(dt float32) {
	if dt <= 0 {
		dt = 1
	}
	ticks := int(mat32.Ceil(float32(nt.MaxDelay()) / dt))
	nt.resizeTo(ticks + ringHeadroom)
}

// resizeTo grows the ring to n slots, re-slotting queued events so that
// their delivery ticks are unchanged.  Never shrinks.
func (nt *Network) resizeTo(n int) {
	old := nt.Events
	if n <= len(old) {
		return
	}
	nt.Events = make([][]SpikeEvent, n)
	for off := 0; off < len(old); off++ {
		oldSlot := (nt.T + off) % len(old)
		newSlot := (nt.T + off) % n
		nt.Events[newSlot] = old[oldSlot]
	}
}

// ScheduleSpike stores a pending delivery of the given weight to the target
// neuron into the ring slot (T + delay) mod ring size.  A delay of 0 lands
// in the slot the next Cycle drains.  If the delay does not fit in the
// current ring, the ring is grown first so the delay is never truncated by
// modulo wraparound.
func (nt *Network) ScheduleSpike(target NeuronID, wt float32, delay int) {
	if !nt.ValidID(target) {
		log.Printf("spike.Network: ScheduleSpike target %d out of range, dropped\n", target)
		return
	}
	if delay < 0 {
		delay = 0
	}
	if delay >= len(nt.Events) {
		nt.resizeTo(delay + ringHeadroom)
	}
	slot := (nt.T + delay) % len(nt.Events)
	nt.Events[slot] = append(nt.Events[slot], SpikeEvent{Target: target, Wt: wt})
}

// Cycle runs one discrete-event simulation tick of duration dt:
//   - drains the current ring slot, adding each event's weight to the
//     target's excitatory (wt >= 0) or inhibitory (wt < 0) conductance
//   - updates every neuron in ascending id order, collecting spikes
//   - schedules every outgoing edge of each spiking neuron
//   - increments T
//
// Note: an edge with Delay 0 traversed here lands in the slot that was
// already drained this tick, so it only delivers after a full ring
// revolution -- give every edge on a propagation path (and at least one
// edge on every cycle in the graph) a delay of 1 or more.
func (nt *Network) Cycle(dt float32) {
	if len(nt.Events) == 0 {
		nt.ResizeEvents()
	}
	slot := nt.T % len(nt.Events)
	pend := nt.Events[slot]
	nt.Events[slot] = pend[:0] // clear after reading -- backing is reused once drained

	for _, ev := range pend {
		nrn := &nt.Neurons[ev.Target]
		if ev.Wt >= 0 {
			nrn.GeSyn += ev.Wt
		} else {
			nrn.GiSyn += -ev.Wt
		}
	}

	nt.Spiked = nt.Spiked[:0]
	for ni := range nt.Neurons {
		nrn := &nt.Neurons[ni]
		if nrn.Cfg.CycleNeuron(nrn, dt) {
			nt.Spiked = append(nt.Spiked, NeuronID(ni))
		}
	}

	for _, sid := range nt.Spiked {
		for _, sy := range nt.Adjacency[sid] {
			nt.ScheduleSpike(sy.Target, sy.Wt, int(sy.Delay))
		}
	}

	nt.T++
}

// InitActs reinitializes all neuron state, drains all pending events and
// resets the tick counter, without touching the topology or ring size.
func (nt *Network) InitActs() {
	for ni := range nt.Neurons {
		nrn := &nt.Neurons[ni]
		nrn.Cfg.InitActs(nrn)
	}
	for si := range nt.Events {
		nt.Events[si] = nt.Events[si][:0]
	}
	nt.T = 0
	nt.Spiked = nt.Spiked[:0]
}

// SizeReport returns a string reporting the size of the network in terms of
// neurons, synapses, queued events, and their memory usage
func (nt *Network) SizeReport() string {
	var b strings.Builder
	nn := len(nt.Neurons)
	nmem := nn * int(unsafe.Sizeof(Neuron{}))
	syn := 0
	for _, row := range nt.Adjacency {
		syn += len(row)
	}
	smem := syn * int(unsafe.Sizeof(Synapse{}))
	evq := 0
	for _, sl := range nt.Events {
		evq += len(sl)
	}
	emem := evq * int(unsafe.Sizeof(SpikeEvent{}))
	fmt.Fprintf(&b, "%14s:\t Neurons: %d\t NeurMem: %v\t Syns: %d\t SynMem: %v\n",
		"Network", nn, (datasize.ByteSize)(nmem).HumanReadable(), syn, (datasize.ByteSize)(smem).HumanReadable())
	fmt.Fprintf(&b, "%14s:\t Slots: %d\t Queued: %d\t EvMem: %v\n",
		"EventRing", len(nt.Events), evq, (datasize.ByteSize)(emem).HumanReadable())
	return b.String()
}
