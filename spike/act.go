// Copyright (c) 2025, The Spikenet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"github.com/chewxy/math32"
)

///////////////////////////////////////////////////////////////////////
//  act.go contains the neuron config params and the per-tick update rule

// spike.NeuronConfig contains the parameters of the conductance-based leaky
// integrate-and-fire point neuron model, and the functions computing its
// per-tick state update.  Immutable after AddNeuron.
type NeuronConfig struct {

	// resting membrane potential (mV) -- the leak current drives Vm toward
	// this value
	VRest float32 `def:"-65" desc:"resting membrane potential (mV) -- leak reversal"`

	// post-spike reset potential (mV) -- also the clamped value throughout
	// the refractory period
	VReset float32 `def:"-75" desc:"post-spike reset potential (mV)"`

	// membrane time constant in ticks -- divides the net current for the
	// forward-Euler Vm update
	TauM float32 `def:"20" min:"1" desc:"membrane time constant (ticks)"`

	// firing threshold (mV) -- crossing it triggers a spike and reset
	Theta float32 `def:"-50" desc:"firing threshold (mV)"`

	// absolute refractory period in ticks following a spike, during which
	// Vm stays at VReset and no integration or spiking occurs
	RefracTicks int32 `def:"5" min:"0" desc:"absolute refractory period (ticks)"`

	// synaptic conductance decay time constant in ticks, shared by the
	// excitatory and inhibitory conductances
	TauSyn float32 `def:"5" min:"1" desc:"synaptic conductance time constant (ticks)"`

	// excitatory (AMPA-like) reversal potential (mV)
	EExc float32 `def:"0" desc:"excitatory reversal potential (mV)"`

	// inhibitory (GABA-A-like, Cl-) reversal potential (mV)
	EInh float32 `def:"-70" desc:"inhibitory reversal potential (mV)"`
}

func (nc *NeuronConfig) Defaults() {
	nc.VRest = -65
	nc.VReset = -75
	nc.TauM = 20
	nc.Theta = -50
	nc.RefracTicks = 5
	nc.TauSyn = 5
	nc.EExc = 0
	nc.EInh = -70
	nc.Update()
}

// Update must be called after any changes to parameters
func (nc *NeuronConfig) Update() {
	if nc.TauM < 1 {
		nc.TauM = 1 // hard min -- Euler step blows up otherwise
	}
	if nc.TauSyn < 1 {
		nc.TauSyn = 1
	}
}

///////////////////////////////////////////////////////////////////////
//  Init

// InitActs initializes the neuron state: Vm at rest, conductances cleared,
// no refractory carryover
func (nc *NeuronConfig) InitActs(nrn *Neuron) {
	nrn.Vm = nc.VRest
	nrn.GeSyn = 0
	nrn.GiSyn = 0
	nrn.Spike = 0
	nrn.RefracLeft = 0
}

///////////////////////////////////////////////////////////////////////
//  Cycle

// DecayConds decays the synaptic conductances exponentially with TauSyn.
// This runs every tick for every neuron, refractory or not.
func (nc *NeuronConfig) DecayConds(nrn *Neuron, dt float32) {
	dk := math32.Exp(-dt / nc.TauSyn)
	nrn.GeSyn *= dk
	nrn.GiSyn *= dk
}

// VmFmG computes one forward-Euler step of the membrane potential from the
// leak and synaptic reversal-driven currents
func (nc *NeuronConfig) VmFmG(nrn *Neuron, dt float32) {
	iLeak := -(nrn.Vm - nc.VRest)
	iExc := nrn.GeSyn * (nc.EExc - nrn.Vm)
	iInh := nrn.GiSyn * (nc.EInh - nrn.Vm)
	nrn.Vm += (iLeak + iExc + iInh) * (dt / nc.TauM)
}

// SpikeFmVm applies the threshold test: on crossing Theta the neuron spikes,
// Vm resets and the refractory countdown starts.  Returns true if it spiked.
func (nc *NeuronConfig) SpikeFmVm(nrn *Neuron) bool {
	if nrn.Vm < nc.Theta {
		nrn.Spike = 0
		return false
	}
	nrn.Vm = nc.VReset
	nrn.RefracLeft = nc.RefracTicks
	nrn.Spike = 1
	return true
}

// CycleNeuron runs the full per-tick update: conductance decay, refractory
// clamp, Vm integration, spike test.  Returns true if the neuron spiked.
// During the refractory period conductances still decay but Vm is clamped
// to VReset and no integration or spike test happens.
func (nc *NeuronConfig) CycleNeuron(nrn *Neuron, dt float32) bool {
	nc.DecayConds(nrn, dt)
	if nrn.RefracLeft > 0 {
		nrn.RefracLeft--
		nrn.Vm = nc.VReset
		nrn.Spike = 0
		return false
	}
	nc.VmFmG(nrn, dt)
	return nc.SpikeFmVm(nrn)
}
