// Copyright (c) 2025, The Spikenet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"testing"
)

func oneNeuronNet() (*Network, NeuronID) {
	net := NewNetwork()
	cfg := defConfig()
	// high threshold keeps the neuron from spiking, so GeSyn directly
	// reflects the delivered stimulus events
	cfg.Theta = 1000
	id := net.AddNeuron(Excitatory, cfg)
	net.ResizeEvents()
	return net, id
}

// geBumps runs n ticks and returns the tick indices on which the target's
// excitatory conductance jumped up (i.e. received a delivery).
func geBumps(sr *StimRunner, net *Network, id NeuronID, n int) []int {
	var bumps []int
	prev := float32(0)
	for tick := 0; tick < n; tick++ {
		sr.Apply(net)
		net.Cycle(1)
		ge := net.Neurons[id].GeSyn
		if ge > prev {
			bumps = append(bumps, tick)
		}
		prev = ge
	}
	return bumps
}

func TestManualPulseFiresOnce(t *testing.T) {
	net, id := oneNeuronNet()
	sr := NewStimRunner(1)
	sr.Fire(1, id, &StimSpec{Mode: ManualPulse, Amp: 5}, net)
	bumps := geBumps(sr, net, id, 10)
	if len(bumps) != 1 || bumps[0] != 0 {
		t.Errorf("manual pulse deliveries at ticks %v, want [0]", bumps)
	}
	if len(sr.Active()) != 0 {
		t.Errorf("manual pulse still active after firing")
	}
}

func TestSpikeTrainTimes(t *testing.T) {
	net, id := oneNeuronNet()
	sr := NewStimRunner(1)
	sr.Fire(1, id, &StimSpec{Mode: SpikeTrain, Times: []int{2, 5}}, net)
	bumps := geBumps(sr, net, id, 10)
	if len(bumps) != 2 || bumps[0] != 2 || bumps[1] != 5 {
		t.Errorf("spike train deliveries at ticks %v, want [2 5]", bumps)
	}
	if len(sr.Active()) != 0 {
		t.Errorf("exhausted spike train still active")
	}
}

func TestSpikeTrainLooped(t *testing.T) {
	net, id := oneNeuronNet()
	sr := NewStimRunner(1)
	sr.Fire(1, id, &StimSpec{Mode: SpikeTrain, Times: []int{1, 3}, Looped: true}, net)
	bumps := geBumps(sr, net, id, 11)
	// period = max offset = 3: offsets 1,3 then rebased at 3,6,9...
	want := []int{1, 3, 4, 6, 7, 9, 10}
	if len(bumps) != len(want) {
		t.Fatalf("looped train deliveries at ticks %v, want %v", bumps, want)
	}
	for i := range want {
		if bumps[i] != want[i] {
			t.Fatalf("looped train deliveries at ticks %v, want %v", bumps, want)
		}
	}
	if len(sr.Active()) != 1 {
		t.Errorf("looped train should stay active")
	}
}

func TestCurrentStep(t *testing.T) {
	net, id := oneNeuronNet()
	sr := NewStimRunner(1)
	// 500 Hz at dt=1ms -> a pulse every 2 ticks, from 2ms through 8ms
	sr.Fire(1, id, &StimSpec{Mode: CurrentStep, Amp: 3, Rate: 500, Start: 2, Stop: 8}, net)
	bumps := geBumps(sr, net, id, 12)
	want := []int{2, 4, 6, 8}
	if len(bumps) != len(want) {
		t.Fatalf("current step deliveries at ticks %v, want %v", bumps, want)
	}
	for i := range want {
		if bumps[i] != want[i] {
			t.Fatalf("current step deliveries at ticks %v, want %v", bumps, want)
		}
	}
	if len(sr.Active()) != 0 {
		t.Errorf("finished current step still active")
	}
}

// TestPoissonDeterminism: equal (rate, seed, start, stop) against identical
// network state must produce identical spike-time sequences.
func TestPoissonDeterminism(t *testing.T) {
	run := func() []int {
		net, id := oneNeuronNet()
		sr := NewStimRunner(1)
		sr.Fire(1, id, &StimSpec{Mode: Poisson, Rate: 200, Seed: 42, Stop: -1}, net)
		return geBumps(sr, net, id, 100)
	}
	b1 := run()
	b2 := run()
	if len(b1) == 0 {
		t.Fatalf("200 Hz Poisson produced no events in 100 ms")
	}
	if len(b1) != len(b2) {
		t.Fatalf("same-seed Poisson runs differ: %v vs %v", b1, b2)
	}
	for i := range b1 {
		if b1[i] != b2[i] {
			t.Fatalf("same-seed Poisson runs differ: %v vs %v", b1, b2)
		}
	}
}

func TestPoissonWindow(t *testing.T) {
	net, id := oneNeuronNet()
	sr := NewStimRunner(1)
	sr.Fire(1, id, &StimSpec{Mode: Poisson, Rate: 1000, Start: 5, Stop: 20}, net)
	bumps := geBumps(sr, net, id, 40)
	for _, b := range bumps {
		if b < 5 || b > 20 {
			t.Errorf("Poisson event at tick %d outside [5, 20] window", b)
		}
	}
	if len(sr.Active()) != 0 {
		t.Errorf("stopped Poisson generator still active")
	}
}

func TestFireReplacesSameID(t *testing.T) {
	net, id := oneNeuronNet()
	sr := NewStimRunner(1)
	sr.Fire(1, id, &StimSpec{Mode: SpikeTrain, Times: []int{50, 60}}, net)
	sr.Fire(1, id, &StimSpec{Mode: ManualPulse, Amp: 5}, net)
	if n := len(sr.Active()); n != 1 {
		t.Fatalf("replacement kept %d generators, want 1", n)
	}
	bumps := geBumps(sr, net, id, 70)
	if len(bumps) != 1 || bumps[0] != 0 {
		t.Errorf("deliveries at ticks %v, want only the replacement pulse at [0]", bumps)
	}
}

func TestRemoveAndClear(t *testing.T) {
	net, id := oneNeuronNet()
	sr := NewStimRunner(1)
	sr.Fire(1, id, &StimSpec{Mode: SpikeTrain, Times: []int{5}}, net)
	sr.Fire(2, id, &StimSpec{Mode: SpikeTrain, Times: []int{6}}, net)
	sr.Remove(1)
	ids := sr.Active()
	if len(ids) != 1 || ids[0] != 2 {
		t.Errorf("Active after Remove: %v, want [2]", ids)
	}
	sr.Clear()
	if len(sr.Active()) != 0 {
		t.Errorf("Active after Clear: %v", sr.Active())
	}
	bumps := geBumps(sr, net, id, 10)
	if len(bumps) != 0 {
		t.Errorf("cleared runner still delivered at ticks %v", bumps)
	}
}

func TestZeroRatePoissonIgnored(t *testing.T) {
	net, id := oneNeuronNet()
	sr := NewStimRunner(1)
	sr.Fire(1, id, &StimSpec{Mode: Poisson, Rate: 0, Stop: -1}, net)
	if len(sr.Active()) != 0 {
		t.Errorf("zero-rate Poisson registered")
	}
}
