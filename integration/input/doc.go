// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package input connects gogpu window events to a heatmap.
//
// Bind registers callbacks on a gpucontext.EventSource and translates them
// into heatmap operations:
//
//	left mouse press        -> click at the cursor
//	touch or pen down       -> click at the contact point
//	R                       -> reset
//	D                       -> toggle background dimming
//	L                       -> toggle cluster labels
//
// The data flow is:
//
//	window events -> Binding -> heatmap.Map -> OnChange -> redraw request
//
// # Usage
//
//	m := heatmap.New(800, 600)
//	input.Bind(app.EventSource(), m,
//	    input.OnChange(func(input.Event) { requestRedraw() }),
//	)
//
// # Thread Safety
//
// Callbacks run on the thread that delivers window events. The bound target
// must only be touched from that same thread, which for gogpu is also the
// thread running OnDraw.
package input
