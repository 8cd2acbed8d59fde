// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package heatmap

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the accumulated heat.
type Stats struct {
	Clicks   int
	Points   int
	Clusters int

	// Peak is the largest cell intensity.
	Peak float64

	// Mean and StdDev are taken over cells with positive intensity.
	Mean   float64
	StdDev float64

	// HotCells counts cells at or above the hot threshold.
	HotCells int
}

// Stats computes heat statistics for the current state.
func (m *Map) Stats() Stats {
	s := Stats{
		Clicks:   m.ClickCount(),
		Points:   m.PointCount(),
		Clusters: len(m.Clusters()),
	}

	active := make([]float64, 0, m.PointCount())
	for _, v := range m.grid.Active() {
		active = append(active, v)
	}
	if len(active) == 0 {
		return s
	}

	s.Peak = floats.Max(active)
	hot := m.HotThreshold()
	s.HotCells = floats.Count(func(v float64) bool { return v >= hot }, active)
	if len(active) == 1 {
		s.Mean = active[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(active, nil)
	return s
}
