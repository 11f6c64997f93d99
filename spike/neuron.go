// Copyright (c) 2025, The Spikenet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"fmt"

	"github.com/goki/ki/kit"
)

// NeuronID is the dense, append-only index of a neuron within a Network.
// Ids are assigned in creation order and are never reused or removed
// during a simulation's lifetime.
type NeuronID int

// NeuronKind is the logical class of a neuron, constraining which motifs
// may treat it as a source of excitatory vs. inhibitory edges.
// Note: the Network itself derives delivery polarity purely from the sign
// of the event weight -- Kind is a contract consumed by motif builders.
type NeuronKind int

//go:generate stringer -type=NeuronKind

var KiT_NeuronKind = kit.Enums.AddEnum(NeuronKindN, kit.NotBitFlag, nil)

func (ev NeuronKind) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *NeuronKind) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Excitatory neurons are sources of excitatory (weight >= 0) edges
	Excitatory NeuronKind = iota

	// Inhibitory neurons are sources of inhibitory (weight <= 0) edges
	Inhibitory

	NeuronKindN
)

// spike.Neuron holds all of the neuron (unit) level state variables for the
// conductance-based leaky integrate-and-fire model, along with its kind and
// its immutable configuration parameters.
type Neuron struct {

	// excitatory vs. inhibitory role of this neuron for motif wiring
	Kind NeuronKind

	// parameters, fixed at AddNeuron time
	Cfg NeuronConfig

	// membrane potential (mV) -- integrates leak and synaptic currents over
	// time and is reset to Cfg.VReset upon spiking.  Only changes inside
	// Network.Cycle.
	Vm float32

	// total excitatory synaptic conductance -- incremented by delivered
	// spike events with weight >= 0, decays with time constant Cfg.TauSyn
	GeSyn float32

	// total inhibitory synaptic conductance -- incremented by |weight| of
	// delivered spike events with weight < 0, decays with Cfg.TauSyn
	GiSyn float32

	// whether neuron spiked on the last cycle (0 or 1)
	Spike float32

	// countdown of remaining refractory ticks -- while > 0 the membrane is
	// clamped to Cfg.VReset and integration is skipped
	RefracLeft int32
}

// NeuronVars are the names of the mutable per-neuron state variables,
// for display and probing purposes.
var NeuronVars = []string{"Vm", "GeSyn", "GiSyn", "Spike", "RefracLeft"}

var NeuronVarsMap map[string]int

func init() {
	NeuronVarsMap = make(map[string]int, len(NeuronVars))
	for i, v := range NeuronVars {
		NeuronVarsMap[v] = i
	}
}

func (nrn *Neuron) VarNames() []string {
	return NeuronVars
}

// NeuronVarIndexByName returns the index of the variable in the Neuron, or error
func NeuronVarIndexByName(varNm string) (int, error) {
	i, ok := NeuronVarsMap[varNm]
	if !ok {
		return -1, fmt.Errorf("Neuron VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in NeuronVars list)
func (nrn *Neuron) VarByIndex(idx int) float32 {
	switch idx {
	case 0:
		return nrn.Vm
	case 1:
		return nrn.GeSyn
	case 2:
		return nrn.GiSyn
	case 3:
		return nrn.Spike
	case 4:
		return float32(nrn.RefracLeft)
	}
	return 0
}

// VarByName returns variable by name, or error
func (nrn *Neuron) VarByName(varNm string) (float32, error) {
	i, err := NeuronVarIndexByName(varNm)
	if err != nil {
		return 0, err
	}
	return nrn.VarByIndex(i), nil
}
