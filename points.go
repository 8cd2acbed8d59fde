// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package heatmap

import (
	"iter"
	"slices"
)

// Point is a raw click location with the number of clicks on that exact pixel.
type Point struct {
	X, Y  int
	Count int
}

// PointSet counts clicks per exact pixel.
//
// Points are keyed by the composite integer y*width + x, so callers must
// only add coordinates inside [0, width). Iteration follows first-click order.
type PointSet struct {
	width  int
	index  map[int]int
	points []Point
	total  int
}

// NewPointSet returns an empty set for a surface of the given width.
func NewPointSet(width int) *PointSet {
	return &PointSet{
		width: max(width, 1),
		index: make(map[int]int),
	}
}

// Add records one click at (x, y) and returns the updated count for that pixel.
func (s *PointSet) Add(x, y int) int {
	key := y*s.width + x
	s.total++
	if i, ok := s.index[key]; ok {
		s.points[i].Count++
		return s.points[i].Count
	}
	s.index[key] = len(s.points)
	s.points = append(s.points, Point{X: x, Y: y, Count: 1})
	return 1
}

// Count returns the number of clicks recorded at (x, y).
func (s *PointSet) Count(x, y int) int {
	if i, ok := s.index[y*s.width+x]; ok {
		return s.points[i].Count
	}
	return 0
}

// Len returns the number of distinct pixels clicked.
func (s *PointSet) Len() int { return len(s.points) }

// Total returns the number of clicks recorded.
func (s *PointSet) Total() int { return s.total }

// Points returns a copy of the points in first-click order.
func (s *PointSet) Points() []Point {
	return slices.Clone(s.points)
}

// All yields the points in first-click order.
func (s *PointSet) All() iter.Seq[Point] {
	return slices.Values(s.points)
}

// Reset removes every point and rekeys the set for a new surface width.
func (s *PointSet) Reset(width int) {
	s.width = max(width, 1)
	clear(s.index)
	s.points = s.points[:0]
	s.total = 0
}
