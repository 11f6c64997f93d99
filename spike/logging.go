// Copyright (c) 2025, The Spikenet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"fmt"
	"io"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
)

// TraceLog records per-tick membrane-potential and conductance traces for a
// chosen set of probed neurons into an etable.Table, one row per tick.
// External plotting and analysis layers consume the table (or its CSV
// form); the engine itself never reads it back.
type TraceLog struct {

	// ids of the neurons to record
	Probes []NeuronID `desc:"ids of the neurons to record"`

	// the trace data -- one row per recorded tick
	Table *etable.Table `desc:"the trace data, one row per recorded tick"`
}

// AddProbe adds a neuron to the probed set.  Call before Config.
func (tl *TraceLog) AddProbe(id NeuronID) {
	tl.Probes = append(tl.Probes, id)
}

// Config builds the table schema from the current probe set: Tick and Time
// columns, then Vm, GeSyn, GiSyn and Spike columns per probed neuron.
func (tl *TraceLog) Config() {
	dt := &etable.Table{}
	dt.SetMetaData("name", "TraceLog")
	dt.SetMetaData("desc", "Membrane potential and conductance traces of probed neurons")
	dt.SetMetaData("read-only", "true")
	sch := etable.Schema{
		{"Tick", etensor.INT64, nil, nil},
		{"Time", etensor.FLOAT64, nil, nil},
	}
	for _, pid := range tl.Probes {
		sch = append(sch, etable.Column{fmt.Sprintf("Vm_%d", pid), etensor.FLOAT64, nil, nil})
		sch = append(sch, etable.Column{fmt.Sprintf("GeSyn_%d", pid), etensor.FLOAT64, nil, nil})
		sch = append(sch, etable.Column{fmt.Sprintf("GiSyn_%d", pid), etensor.FLOAT64, nil, nil})
		sch = append(sch, etable.Column{fmt.Sprintf("Spike_%d", pid), etensor.FLOAT64, nil, nil})
	}
	dt.SetFromSchema(sch, 0)
	tl.Table = dt
}

// Record appends one row with the current state of every probed neuron.
// Call once per tick after Network.Cycle; dt converts the tick count to
// simulated time in ms.  Probes out of range are skipped.
func (tl *TraceLog) Record(net *Network, dt float32) {
	if tl.Table == nil {
		tl.Config()
	}
	row := tl.Table.Rows
	tl.Table.SetNumRows(row + 1)
	tl.Table.SetCellFloat("Tick", row, float64(net.T))
	tl.Table.SetCellFloat("Time", row, float64(net.T)*float64(dt))
	for _, pid := range tl.Probes {
		if !net.ValidID(pid) {
			continue
		}
		nrn := &net.Neurons[pid]
		tl.Table.SetCellFloat(fmt.Sprintf("Vm_%d", pid), row, float64(nrn.Vm))
		tl.Table.SetCellFloat(fmt.Sprintf("GeSyn_%d", pid), row, float64(nrn.GeSyn))
		tl.Table.SetCellFloat(fmt.Sprintf("GiSyn_%d", pid), row, float64(nrn.GiSyn))
		tl.Table.SetCellFloat(fmt.Sprintf("Spike_%d", pid), row, float64(nrn.Spike))
	}
}

// WriteCSV writes the recorded trace as tab-separated values with headers
func (tl *TraceLog) WriteCSV(w io.Writer) error {
	if tl.Table == nil {
		return nil
	}
	_, err := tl.Table.WriteCSVHeaders(w, etable.Tab)
	if err != nil {
		return err
	}
	for row := 0; row < tl.Table.Rows; row++ {
		err = tl.Table.WriteCSVRow(w, row, etable.Tab)
		if err != nil {
			return err
		}
	}
	return nil
}
