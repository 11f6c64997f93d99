// Copyright (c) 2025, The Spikenet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spike implements the core spikenet simulation engine: leaky
integrate-and-fire point neurons with conductance-based synapses, a Network
owning all neuron state and a delay ring buffer of pending spike events, and
a StimRunner converting declarative stimulus descriptions into scheduled
events over time.

A driver builds a Network (directly or via the motifs package), sizes the
event ring, registers stimuli, then steps synchronously:

	net := spike.NewNetwork()
	// ... AddNeuron / Connect / motifs ...
	net.ResizeEvents()

	sr := spike.NewStimRunner(1) // dt = 1 ms per tick
	sr.Fire(1, input, &spike.StimSpec{Mode: spike.ManualPulse, Amp: 20}, net)

	for t := 0; t < 100; t++ {
		sr.Apply(net)
		net.Cycle(1)
	}

Everything is single-threaded and caller-driven: no operation suspends,
blocks, or runs in the background.  Given identical initial state, topology
and dt, repeated runs produce bit-identical trajectories.
*/
package spike
