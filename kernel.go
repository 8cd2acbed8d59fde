// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package heatmap

import "math"

// DefaultBoost is the scale applied to every kernel weight.
const DefaultBoost = 1.35

// Kernel is a truncated Gaussian stamp applied to a Grid per click.
//
// Weights are precomputed for a (2r+1) x (2r+1) window of cells. A cell at
// Euclidean distance d <= r from the center receives
//
//	exp(-d² / (2σ²)) * boost,  σ = r/2
//
// and cells beyond r receive nothing.
type Kernel struct {
	radius  int
	boost   float64
	weights []float64
}

// NewKernel builds a kernel with the given radius in grid cells.
// A radius <= 0 yields a single-cell kernel of weight boost.
func NewKernel(radius int, boost float64) *Kernel {
	radius = max(radius, 0)
	size := 2*radius + 1
	k := &Kernel{
		radius:  radius,
		boost:   boost,
		weights: make([]float64, size*size),
	}
	if radius == 0 {
		k.weights[0] = boost
		return k
	}

	sigma := float64(radius) / 2
	twoSigmaSq := 2 * sigma * sigma
	rSq := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			dSq := dx*dx + dy*dy
			if dSq > rSq {
				continue
			}
			k.weights[(dy+radius)*size+dx+radius] = math.Exp(-float64(dSq)/twoSigmaSq) * boost
		}
	}
	return k
}

// Radius returns the kernel radius in grid cells.
func (k *Kernel) Radius() int { return k.radius }

// Boost returns the peak weight.
func (k *Kernel) Boost() float64 { return k.boost }

// Weight returns the contribution to the cell offset by (dx, dy) from the
// center cell.
func (k *Kernel) Weight(dx, dy int) float64 {
	if dx < -k.radius || dx > k.radius || dy < -k.radius || dy > k.radius {
		return 0
	}
	size := 2*k.radius + 1
	return k.weights[(dy+k.radius)*size+dx+k.radius]
}

// Apply adds the kernel to g centered on the cell containing pixel
// (px, py). Cells outside the grid are skipped.
func (k *Kernel) Apply(g *Grid, px, py int) {
	gx, gy := g.CellOf(px, py)
	size := 2*k.radius + 1

	for dy := -k.radius; dy <= k.radius; dy++ {
		y := gy + dy
		if y < 0 || y >= g.rows {
			continue
		}
		row := k.weights[(dy+k.radius)*size:]
		for dx := -k.radius; dx <= k.radius; dx++ {
			x := gx + dx
			if x < 0 || x >= g.cols {
				continue
			}
			if w := row[dx+k.radius]; w > 0 {
				g.cells[y*g.cols+x] += w
			}
		}
	}
}
