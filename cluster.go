// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package heatmap

import (
	"cmp"
	"math"
	"slices"

	"github.com/golang/geo/r2"
)

// Cluster merge defaults, in surface pixels.
const (
	DefaultMergeRadius    = 24.0
	DefaultHotMergeRadius = 48.0

	// DefaultHotRatio is the fraction of the maximum intensity at which a
	// point counts as lying in a hot region.
	DefaultHotRatio = 0.72
)

// Cluster is a group of nearby raw points shown as a single label.
// X and Y are the count-weighted centroid of the members.
type Cluster struct {
	X, Y        float64
	Count       int
	MergeRadius float64
}

// Center returns the cluster centroid.
func (c Cluster) Center() r2.Point {
	return r2.Point{X: c.X, Y: c.Y}
}

// RadiusFunc returns the merge radius for a raw point at (x, y).
type RadiusFunc func(x, y int) float64

// FixedRadius returns a RadiusFunc that always yields r.
func FixedRadius(r float64) RadiusFunc {
	return func(int, int) float64 { return r }
}

// Summarize merges raw points into clusters in a single greedy pass.
//
// Points are visited by descending count, ties in input order. Each point
// joins the nearest cluster whose centroid lies within the larger of the
// point's own radius and the cluster's radius; if none qualifies it seeds a
// new cluster. On merge the centroid moves to the count-weighted mean, counts
// add up and the cluster keeps the larger radius.
//
// The result is recomputed from scratch on each call. The sum of cluster
// counts always equals the sum of point counts.
func Summarize(points []Point, radius RadiusFunc) []Cluster {
	if len(points) == 0 {
		return nil
	}
	if radius == nil {
		radius = FixedRadius(0)
	}

	order := slices.Clone(points)
	slices.SortStableFunc(order, func(a, b Point) int {
		return cmp.Compare(b.Count, a.Count)
	})

	clusters := make([]Cluster, 0, len(order))
	for _, p := range order {
		r := radius(p.X, p.Y)
		at := r2.Point{X: float64(p.X), Y: float64(p.Y)}

		best, bestDist := -1, math.Inf(1)
		for i := range clusters {
			d := clusters[i].Center().Sub(at).Norm()
			if d <= math.Max(r, clusters[i].MergeRadius) && d < bestDist {
				best, bestDist = i, d
			}
		}

		if best < 0 {
			clusters = append(clusters, Cluster{X: at.X, Y: at.Y, Count: p.Count, MergeRadius: r})
			continue
		}

		c := &clusters[best]
		total := c.Count + p.Count
		c.X = (c.X*float64(c.Count) + at.X*float64(p.Count)) / float64(total)
		c.Y = (c.Y*float64(c.Count) + at.Y*float64(p.Count)) / float64(total)
		c.Count = total
		c.MergeRadius = math.Max(c.MergeRadius, r)
	}
	return clusters
}
