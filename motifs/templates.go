// Copyright (c) 2025, The Spikenet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package motifs

import (
	"github.com/cortexlab/spikenet/spike"
	"github.com/emer/emergent/erand"
)

// CircuitParams parameterizes the ready-made sensory discrimination
// circuit template
type CircuitParams struct {

	// weight of the strong excitatory connections (processing layer into
	// the inhibitor and into the decision neuron)
	StrongWt float32 `def:"16" desc:"strong excitatory connection weight"`

	// weight of the input -> processing branch connections, before jitter
	BranchWt float32 `def:"4" desc:"input to processing branch weight"`

	// weight of the inhibitor -> processing connections
	InhibWt float32 `def:"-2" desc:"lateral inhibition weight"`

	// uniform jitter range added to each branch neuron's firing threshold,
	// differentiating otherwise identical branches -- 0 disables all jitter
	NoiseAmt float32 `def:"0" desc:"theta jitter range, 0 = deterministic"`

	// uniform jitter range added to each branch connection weight,
	// applied only when NoiseAmt > 0
	WtNoise float32 `def:"2" desc:"branch weight jitter range"`
}

func (pr *CircuitParams) Defaults() {
	pr.StrongWt = 16
	pr.BranchWt = 4
	pr.InhibWt = -2
	pr.NoiseAmt = 0
	pr.WtNoise = 2
}

// BuildSensoryCircuit builds the stock three-branch sensory discrimination
// circuit: one input neuron diverging onto three processing neurons, a
// lateral inhibitor fed by and inhibiting all three, and one decision
// neuron the three converge onto.  With NoiseAmt > 0 each branch gets a
// jittered threshold and weight, so branches race and the inhibitor
// enforces a winner.  Returns the input and decision neuron ids.
func BuildSensoryCircuit(net *spike.Network, pr *CircuitParams) (input, decision spike.NeuronID, err error) {
	defCfg := spike.NeuronConfig{}
	defCfg.Defaults()

	thetaRnd := erand.RndParams{Dist: erand.Uniform, Mean: 0, Var: float64(pr.NoiseAmt)}
	wtRnd := erand.RndParams{Dist: erand.Uniform, Mean: 0, Var: float64(pr.WtNoise)}

	outputs := make([]OutputSpec, 3)
	for i := range outputs {
		cfg := defCfg
		wt := pr.BranchWt
		if pr.NoiseAmt > 0 {
			cfg.Theta += float32(thetaRnd.Gen(-1))
			wt += float32(wtRnd.Gen(-1))
		}
		outputs[i] = OutputSpec{Config: cfg, Conn: ConnectionSpec{Wt: wt, Delay: 1}}
	}

	strong := ConnectionSpec{Wt: pr.StrongWt, Delay: 1}
	inhibitory := ConnectionSpec{Wt: pr.InhibWt, Delay: 1}

	input = net.AddNeuron(spike.Excitatory, defCfg)

	procLayer, err := DivergentExcitation(net, input, outputs)
	if err != nil {
		return -1, -1, err
	}

	excInputs := make([]InputSpec, len(procLayer))
	inhTargets := make([]InputSpec, len(procLayer))
	convInputs := make([]InputSpec, len(procLayer))
	for i, id := range procLayer {
		excInputs[i] = InputSpec{ID: id, Conn: strong}
		inhTargets[i] = InputSpec{ID: id, Conn: inhibitory}
		convInputs[i] = InputSpec{ID: id, Conn: strong}
	}

	_, err = LateralInhibition(net, excInputs, inhTargets, defCfg)
	if err != nil {
		return -1, -1, err
	}

	decision, err = ConvergentExcitation(net, convInputs, defCfg)
	if err != nil {
		return -1, -1, err
	}
	return input, decision, nil
}
