// Copyright (c) 2025, The Spikenet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package motifs builds validated canonical circuit wiring patterns
(divergence, convergence, lateral / feedforward / feedback inhibition,
disinhibition, recurrent excitation, cross-inhibition) purely from the
spike.Network AddNeuron / Connect primitives.

Every builder validates its edge specs -- finite weights with the sign
matching the logical role of each edge -- and any required neuron roles
before creating any neuron, so a failed composition leaves the network
unchanged.
*/
package motifs

import (
	"errors"
	"fmt"

	"github.com/cortexlab/spikenet/spike"
	"github.com/goki/mat32"
)

var (
	// ErrPolarity indicates an edge weight whose sign contradicts the
	// motif's excitatory / inhibitory contract, or a non-finite weight
	ErrPolarity = errors.New("edge weight violates polarity contract")

	// ErrRole indicates a neuron whose kind does not satisfy the role the
	// motif requires of it
	ErrRole = errors.New("neuron kind violates motif role requirement")
)

// ConnectionSpec carries the weight and conduction delay (ticks) of one
// edge to be created
type ConnectionSpec struct {
	Wt    float32 `desc:"connection weight -- sign must match the edge's logical role"`
	Delay int32   `desc:"conduction delay in ticks"`
}

// InputSpec names an existing neuron and the connection to wire from (or
// to) it
type InputSpec struct {
	ID   spike.NeuronID
	Conn ConnectionSpec
}

// OutputSpec carries the config of a neuron to be created and the
// connection to wire into it
type OutputSpec struct {
	Config spike.NeuronConfig
	Conn   ConnectionSpec
}

// ensureExcitatory validates that a weight is finite and >= 0
func ensureExcitatory(wt float32) error {
	if mat32.IsNaN(wt) || mat32.IsInf(wt, 0) || wt < 0 {
		return fmt.Errorf("motifs: weight %g must be finite and >= 0: %w", wt, ErrPolarity)
	}
	return nil
}

// ensureInhibitory validates that a weight is finite and <= 0
func ensureInhibitory(wt float32) error {
	if mat32.IsNaN(wt) || mat32.IsInf(wt, 0) || wt > 0 {
		return fmt.Errorf("motifs: weight %g must be finite and <= 0: %w", wt, ErrPolarity)
	}
	return nil
}

func ensureID(net *spike.Network, id spike.NeuronID) error {
	if !net.ValidID(id) {
		return fmt.Errorf("motifs: neuron %d with %d neurons: %w", id, net.NumNeurons(), spike.ErrInvalidID)
	}
	return nil
}

// ConvergentExcitation creates one excitatory receiver neuron and connects
// every input to it.  All input connections must be excitatory.
func ConvergentExcitation(net *spike.Network, inputs []InputSpec, cfg spike.NeuronConfig) (spike.NeuronID, error) {
	for _, in := range inputs {
		if err := ensureID(net, in.ID); err != nil {
			return -1, err
		}
		if err := ensureExcitatory(in.Conn.Wt); err != nil {
			return -1, err
		}
	}
	recv := net.AddNeuron(spike.Excitatory, cfg)
	for _, in := range inputs {
		if err := net.Connect(in.ID, recv, in.Conn.Wt, in.Conn.Delay); err != nil {
			return -1, err
		}
	}
	return recv, nil
}

// DivergentExcitation creates one excitatory neuron per output spec and
// wires source -> each.  All output connections must be excitatory.
func DivergentExcitation(net *spike.Network, source spike.NeuronID, outputs []OutputSpec) ([]spike.NeuronID, error) {
	if err := ensureID(net, source); err != nil {
		return nil, err
	}
	for _, out := range outputs {
		if err := ensureExcitatory(out.Conn.Wt); err != nil {
			return nil, err
		}
	}
	ids := make([]spike.NeuronID, 0, len(outputs))
	for _, out := range outputs {
		id := net.AddNeuron(spike.Excitatory, out.Config)
		if err := net.Connect(source, id, out.Conn.Wt, out.Conn.Delay); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// LateralInhibition creates one inhibitor neuron, wires every excitatory
// input into it, and wires it onto every inhibitory target.  Input
// connections must be excitatory, target connections inhibitory.
// Returns the inhibitor's id.
func LateralInhibition(net *spike.Network, excInputs, inhTargets []InputSpec, inhibCfg spike.NeuronConfig) (spike.NeuronID, error) {
	for _, in := range excInputs {
		if err := ensureID(net, in.ID); err != nil {
			return -1, err
		}
		if err := ensureExcitatory(in.Conn.Wt); err != nil {
			return -1, err
		}
	}
	for _, tg := range inhTargets {
		if err := ensureID(net, tg.ID); err != nil {
			return -1, err
		}
		if err := ensureInhibitory(tg.Conn.Wt); err != nil {
			return -1, err
		}
	}
	inhib := net.AddNeuron(spike.Inhibitory, inhibCfg)
	for _, in := range excInputs {
		if err := net.Connect(in.ID, inhib, in.Conn.Wt, in.Conn.Delay); err != nil {
			return -1, err
		}
	}
	for _, tg := range inhTargets {
		if err := net.Connect(inhib, tg.ID, tg.Conn.Wt, tg.Conn.Delay); err != nil {
			return -1, err
		}
	}
	return inhib, nil
}

// FeedforwardInhibition creates a forward excitatory neuron and an
// inhibitor, wiring pre -> forward and pre -> inhibitor -> forward, so the
// same input that drives the forward neuron also curtails it one synapse
// later.  preFwd and preInh must be excitatory, inhFwd inhibitory.
// Returns (forward, inhibitor).
func FeedforwardInhibition(net *spike.Network, pre spike.NeuronID, fwdCfg, inhibCfg spike.NeuronConfig, preFwd, preInh, inhFwd ConnectionSpec) (spike.NeuronID, spike.NeuronID, error) {
	if err := ensureID(net, pre); err != nil {
		return -1, -1, err
	}
	if err := ensureExcitatory(preFwd.Wt); err != nil {
		return -1, -1, err
	}
	if err := ensureExcitatory(preInh.Wt); err != nil {
		return -1, -1, err
	}
	if err := ensureInhibitory(inhFwd.Wt); err != nil {
		return -1, -1, err
	}
	fwd := net.AddNeuron(spike.Excitatory, fwdCfg)
	inhib := net.AddNeuron(spike.Inhibitory, inhibCfg)
	if err := net.Connect(pre, fwd, preFwd.Wt, preFwd.Delay); err != nil {
		return -1, -1, err
	}
	if err := net.Connect(pre, inhib, preInh.Wt, preInh.Delay); err != nil {
		return -1, -1, err
	}
	if err := net.Connect(inhib, fwd, inhFwd.Wt, inhFwd.Delay); err != nil {
		return -1, -1, err
	}
	return fwd, inhib, nil
}

// FeedbackInhibition creates a forward excitatory neuron and an inhibitor,
// wiring pre -> forward and forward -> inhibitor -> forward, so the forward
// neuron's own activity recruits its inhibition.  preFwd and fwdInh must be
// excitatory, inhFwd inhibitory.  Returns (forward, inhibitor).
func FeedbackInhibition(net *spike.Network, pre spike.NeuronID, fwdCfg, inhibCfg spike.NeuronConfig, preFwd, fwdInh, inhFwd ConnectionSpec) (spike.NeuronID, spike.NeuronID, error) {
	if err := ensureID(net, pre); err != nil {
		return -1, -1, err
	}
	if err := ensureExcitatory(preFwd.Wt); err != nil {
		return -1, -1, err
	}
	if err := ensureExcitatory(fwdInh.Wt); err != nil {
		return -1, -1, err
	}
	if err := ensureInhibitory(inhFwd.Wt); err != nil {
		return -1, -1, err
	}
	fwd := net.AddNeuron(spike.Excitatory, fwdCfg)
	inhib := net.AddNeuron(spike.Inhibitory, inhibCfg)
	if err := net.Connect(pre, fwd, preFwd.Wt, preFwd.Delay); err != nil {
		return -1, -1, err
	}
	if err := net.Connect(fwd, inhib, fwdInh.Wt, fwdInh.Delay); err != nil {
		return -1, -1, err
	}
	if err := net.Connect(inhib, fwd, inhFwd.Wt, inhFwd.Delay); err != nil {
		return -1, -1, err
	}
	return fwd, inhib, nil
}

// Disinhibition creates an inhibitory output neuron inhibited by pre,
// releasing whatever the output would otherwise suppress.  pre must itself
// be Inhibitory, and the connection weight inhibitory.
func Disinhibition(net *spike.Network, pre spike.NeuronID, outCfg spike.NeuronConfig, conn ConnectionSpec) (spike.NeuronID, error) {
	if err := ensureID(net, pre); err != nil {
		return -1, err
	}
	if net.Neurons[pre].Kind != spike.Inhibitory {
		return -1, fmt.Errorf("motifs: disinhibition source %d is %v, must be Inhibitory: %w", pre, net.Neurons[pre].Kind, ErrRole)
	}
	if err := ensureInhibitory(conn.Wt); err != nil {
		return -1, err
	}
	out := net.AddNeuron(spike.Inhibitory, outCfg)
	if err := net.Connect(pre, out, conn.Wt, conn.Delay); err != nil {
		return -1, err
	}
	return out, nil
}

// RecurrentExcitation fully connects every ordered pair of the given
// neurons (no self-loops), each edge using its source input's own
// excitatory connection spec.  Requires at least 2 inputs.
func RecurrentExcitation(net *spike.Network, inputs []InputSpec) error {
	if len(inputs) < 2 {
		return fmt.Errorf("motifs: recurrent excitation requires at least 2 inputs, got %d", len(inputs))
	}
	for _, in := range inputs {
		if err := ensureID(net, in.ID); err != nil {
			return err
		}
		if err := ensureExcitatory(in.Conn.Wt); err != nil {
			return err
		}
	}
	for i, src := range inputs {
		for j, tgt := range inputs {
			if i == j {
				continue
			}
			if err := net.Connect(src.ID, tgt.ID, src.Conn.Wt, src.Conn.Delay); err != nil {
				return err
			}
		}
	}
	return nil
}

// CrossInhibitionFollowing wires two independent excitatory pathways
// (preA -> postA, preB -> postB, already present in the network) through
// two new inhibitor neurons such that each pathway inhibits the other
// pathway's downstream neuron: preA drives an inhibitor of postB and preB
// drives an inhibitor of postA.  This is the scaffold for winner-take-all
// competition between the pathways.  drive must be excitatory, inhibit
// inhibitory.  Returns the two inhibitors (following A, following B).
func CrossInhibitionFollowing(net *spike.Network, preA, postA, preB, postB spike.NeuronID, inhibCfg spike.NeuronConfig, drive, inhibit ConnectionSpec) (spike.NeuronID, spike.NeuronID, error) {
	for _, id := range []spike.NeuronID{preA, postA, preB, postB} {
		if err := ensureID(net, id); err != nil {
			return -1, -1, err
		}
	}
	if err := ensureExcitatory(drive.Wt); err != nil {
		return -1, -1, err
	}
	if err := ensureInhibitory(inhibit.Wt); err != nil {
		return -1, -1, err
	}
	inhA := net.AddNeuron(spike.Inhibitory, inhibCfg)
	inhB := net.AddNeuron(spike.Inhibitory, inhibCfg)
	if err := net.Connect(preA, inhA, drive.Wt, drive.Delay); err != nil {
		return -1, -1, err
	}
	if err := net.Connect(inhA, postB, inhibit.Wt, inhibit.Delay); err != nil {
		return -1, -1, err
	}
	if err := net.Connect(preB, inhB, drive.Wt, drive.Delay); err != nil {
		return -1, -1, err
	}
	if err := net.Connect(inhB, postA, inhibit.Wt, inhibit.Delay); err != nil {
		return -1, -1, err
	}
	return inhA, inhB, nil
}
