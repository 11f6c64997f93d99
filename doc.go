// Copyright (c) 2025, The Spikenet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spikenet is the overall repository for the spikenet event-driven
spiking point-neuron simulation engine, implemented in the Go language
(golang).

This top-level of the repository has no functional code -- everything is
organized into the following sub-repositories:

* spike: the core engine, with the leaky integrate-and-fire neuron model
using conductance-based synapses, the Network that owns all neuron state and
propagates spikes through a delay ring buffer, the StimRunner that converts
declarative stimulus descriptions into scheduled spike events, and a
TraceLog for recording membrane-potential traces into etable tables.

* motifs: validated composition functions that build canonical circuit
wiring patterns (divergence, convergence, lateral / feedforward / feedback
inhibition, disinhibition, recurrent excitation, cross-inhibition) from the
Network primitives, plus ready-made circuit templates.

* examples: these compile into runnable programs.  examples/sensory builds
a small three-branch sensory discrimination circuit, injects a spike, and
prints and records the resulting activity.

The engine is stepped synchronously by an external driver: register stimuli
with a StimRunner, then repeatedly call StimRunner.Apply followed by
Network.Cycle.  There is no internal concurrency -- see the spike package
docs for the determinism contract.
*/
package spikenet
