// Copyright (c) 2025, The Spikenet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"errors"
	"strings"
	"testing"

	"github.com/chewxy/math32"
)

func defConfig() NeuronConfig {
	cfg := NeuronConfig{}
	cfg.Defaults()
	return cfg
}

func TestAddNeuron(t *testing.T) {
	net := NewNetwork()
	cfg := defConfig()
	for i := 0; i < 4; i++ {
		id := net.AddNeuron(Excitatory, cfg)
		if id != NeuronID(i) {
			t.Errorf("AddNeuron id: got %d, want %d", id, i)
		}
	}
	if len(net.Adjacency) != len(net.Neurons) {
		t.Errorf("adjacency rows %d != neurons %d", len(net.Adjacency), len(net.Neurons))
	}
	if net.Neurons[0].Vm != cfg.VRest {
		t.Errorf("new neuron Vm: got %g, want VRest %g", net.Neurons[0].Vm, cfg.VRest)
	}
}

func TestConnectInvalidID(t *testing.T) {
	net := NewNetwork()
	cfg := defConfig()
	n0 := net.AddNeuron(Excitatory, cfg)
	if err := net.Connect(n0, 1, 1, 1); !errors.Is(err, ErrInvalidID) {
		t.Errorf("connect to missing post: got %v, want ErrInvalidID", err)
	}
	if err := net.Connect(-1, n0, 1, 1); !errors.Is(err, ErrInvalidID) {
		t.Errorf("connect from negative pre: got %v, want ErrInvalidID", err)
	}
	if err := net.Connect(n0, n0, 1, 1); err != nil {
		t.Errorf("valid self connect: got %v", err)
	}
	if len(net.Adjacency) != len(net.Neurons) {
		t.Errorf("adjacency rows %d != neurons %d after failed connects", len(net.Adjacency), len(net.Neurons))
	}
}

// TestScheduleDelivery verifies a single scheduled event is delivered
// exactly once, at exactly tick t0 + d.
func TestScheduleDelivery(t *testing.T) {
	net := NewNetwork()
	cfg := defConfig()
	n0 := net.AddNeuron(Excitatory, cfg)
	net.ResizeEvents()

	const d = 3
	const wt = float32(5)
	net.ScheduleSpike(n0, wt, d)

	dk := math32.Exp(-1.0 / cfg.TauSyn)
	for tick := 0; tick < 8; tick++ {
		net.Cycle(1)
		ge := net.Neurons[n0].GeSyn
		switch {
		case tick < d:
			if ge != 0 {
				t.Errorf("tick %d: GeSyn %g before delivery tick %d", tick, ge, d)
			}
		case tick == d:
			want := wt * dk // delivered, then decayed once within the tick
			if dif := math32.Abs(ge - want); dif > difTol {
				t.Errorf("tick %d: GeSyn %g, want %g", tick, ge, want)
			}
		default:
			want := wt * dk
			for i := d; i < tick; i++ {
				want *= dk
			}
			if dif := math32.Abs(ge - want); dif > difTol {
				t.Errorf("tick %d: GeSyn %g, want pure decay %g (no second delivery)", tick, ge, want)
			}
		}
	}
}

func TestDelayZeroDeliveredNextCycle(t *testing.T) {
	net := NewNetwork()
	cfg := defConfig()
	n0 := net.AddNeuron(Excitatory, cfg)
	net.ResizeEvents()
	net.ScheduleSpike(n0, 5, 0)
	if net.Neurons[n0].GeSyn != 0 {
		t.Errorf("event delivered before any Cycle")
	}
	net.Cycle(1)
	if net.Neurons[n0].GeSyn == 0 {
		t.Errorf("delay-0 event not delivered by the next Cycle")
	}
}

func TestInhibitoryDelivery(t *testing.T) {
	net := NewNetwork()
	cfg := defConfig()
	n0 := net.AddNeuron(Excitatory, cfg)
	net.ResizeEvents()
	net.ScheduleSpike(n0, -4, 0)
	net.Cycle(1)
	nrn := &net.Neurons[n0]
	if nrn.GeSyn != 0 {
		t.Errorf("negative weight leaked into GeSyn: %g", nrn.GeSyn)
	}
	want := 4 * math32.Exp(-1.0/cfg.TauSyn)
	if dif := math32.Abs(nrn.GiSyn - want); dif > difTol {
		t.Errorf("GiSyn from negative weight: got %g, want %g", nrn.GiSyn, want)
	}
}

// TestRingGrowPreservesEvents checks that growing the ring (directly or via
// a late ScheduleSpike with a delay beyond capacity) keeps queued events on
// their original delivery ticks.
func TestRingGrowPreservesEvents(t *testing.T) {
	net := NewNetwork()
	cfg := defConfig()
	n0 := net.AddNeuron(Excitatory, cfg)
	n1 := net.AddNeuron(Excitatory, cfg)
	net.ResizeEvents() // no edges: minimal ring

	net.ScheduleSpike(n0, 5, 1)
	net.ScheduleSpike(n1, 7, 10) // beyond capacity: must grow, not wrap

	if len(net.Events) <= 10 {
		t.Fatalf("ring did not grow: %d slots", len(net.Events))
	}

	got0, got1 := -1, -1
	for tick := 0; tick < 12; tick++ {
		net.Cycle(1)
		if got0 < 0 && net.Neurons[n0].GeSyn > 0 {
			got0 = tick
		}
		if got1 < 0 && net.Neurons[n1].GeSyn > 0 {
			got1 = tick
		}
	}
	if got0 != 1 {
		t.Errorf("short-delay event delivered at tick %d, want 1", got0)
	}
	if got1 != 10 {
		t.Errorf("long-delay event delivered at tick %d, want 10", got1)
	}
}

func TestResizeEventsAfterConnect(t *testing.T) {
	net := NewNetwork()
	cfg := defConfig()
	n0 := net.AddNeuron(Excitatory, cfg)
	n1 := net.AddNeuron(Excitatory, cfg)
	if err := net.Connect(n0, n1, 1, 7); err != nil {
		t.Fatal(err)
	}
	net.ResizeEvents()
	if len(net.Events) <= 7 {
		t.Errorf("ring size %d does not exceed max delay 7", len(net.Events))
	}
	net.ResizeEventsDt(0.5) // 7 ms at 0.5 ms ticks = 14 ticks
	if len(net.Events) <= 14 {
		t.Errorf("ring size %d does not cover 14-tick converted delay", len(net.Events))
	}
}

// TestDeterminism runs two identical networks, including a mutually
// excitatory pair, and requires bit-identical trajectories.
func TestDeterminism(t *testing.T) {
	build := func() *Network {
		net := NewNetwork()
		cfg := defConfig()
		a := net.AddNeuron(Excitatory, cfg)
		b := net.AddNeuron(Excitatory, cfg)
		c := net.AddNeuron(Inhibitory, cfg)
		net.Connect(a, b, 16, 1)
		net.Connect(b, a, 16, 2)
		net.Connect(a, c, 8, 1)
		net.Connect(c, a, -6, 1)
		net.Connect(c, b, -6, 3)
		net.ResizeEvents()
		net.ScheduleSpike(a, 20, 0)
		return net
	}
	net1 := build()
	net2 := build()
	for tick := 0; tick < 200; tick++ {
		net1.Cycle(1)
		net2.Cycle(1)
		for ni := range net1.Neurons {
			r1, r2 := &net1.Neurons[ni], &net2.Neurons[ni]
			if r1.Vm != r2.Vm || r1.GeSyn != r2.GeSyn || r1.GiSyn != r2.GiSyn {
				t.Fatalf("tick %d neuron %d: trajectories diverged: %+v vs %+v", tick, ni, r1, r2)
			}
		}
	}
}

func TestInitActs(t *testing.T) {
	net := NewNetwork()
	cfg := defConfig()
	n0 := net.AddNeuron(Excitatory, cfg)
	net.ResizeEvents()
	net.ScheduleSpike(n0, 20, 1)
	net.Cycle(1)
	net.Cycle(1)
	net.InitActs()
	if net.T != 0 {
		t.Errorf("T after InitActs: %d", net.T)
	}
	if net.Neurons[n0].Vm != cfg.VRest || net.Neurons[n0].GeSyn != 0 {
		t.Errorf("neuron state not reset: %+v", net.Neurons[n0])
	}
	for si, sl := range net.Events {
		if len(sl) != 0 {
			t.Errorf("slot %d still has %d queued events", si, len(sl))
		}
	}
}

func TestSizeReport(t *testing.T) {
	net := NewNetwork()
	cfg := defConfig()
	n0 := net.AddNeuron(Excitatory, cfg)
	n1 := net.AddNeuron(Excitatory, cfg)
	net.Connect(n0, n1, 1, 1)
	net.ResizeEvents()
	rep := net.SizeReport()
	if !strings.Contains(rep, "Neurons: 2") || !strings.Contains(rep, "Syns: 1") {
		t.Errorf("unexpected size report:\n%s", rep)
	}
}

func TestNeuronVarAccess(t *testing.T) {
	net := NewNetwork()
	cfg := defConfig()
	n0 := net.AddNeuron(Excitatory, cfg)
	vm, err := net.Neurons[n0].VarByName("Vm")
	if err != nil {
		t.Fatal(err)
	}
	if vm != cfg.VRest {
		t.Errorf("VarByName Vm: got %g, want %g", vm, cfg.VRest)
	}
	if _, err := net.Neurons[n0].VarByName("Bogus"); err == nil {
		t.Errorf("VarByName accepted unknown variable")
	}
}
