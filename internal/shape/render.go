/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package shape

import (
	"math"
	"strings"

	"shapekit/internal/textlayout"
	"shapekit/internal/vector"
)

const (
	// GhostedOpacity is the opacity of shapes drawn as ghosts.
	GhostedOpacity float32 = 0.3
	// BindingDistance is how close an arrow end must come to bind.
	BindingDistance float32 = 16
	// LabelPadding is the horizontal space kept free around a label.
	LabelPadding float32 = 16
)

var bindingColor = vector.Color{R: 65, G: 132, B: 244, A: 31}

// RenderState carries the editor flags that affect one render.
type RenderState struct {
	IsEditing  bool
	IsBinding  bool
	IsSelected bool
	IsGhost    bool
	IsDarkMode bool
}

// RenderOptions configures rendering. The zero value is usable.
type RenderOptions struct {
	// Fonts measures label text; nil uses textlayout.BasicProvider.
	Fonts textlayout.Provider
	// GhostOpacity overrides GhostedOpacity when positive.
	GhostOpacity float32
}

// ShouldSkipRender reports whether next draws exactly like prev. Only size,
// style and text change the drawing; point and rotation are applied by the
// placement transform.
func ShouldSkipRender(prev, next Shape) bool {
	return prev.Size == next.Size && prev.Style == next.Style && prev.Text == next.Text
}

// Render draws s in shape-local coordinates. The result holds the body group
// (binding cue and outline, ghosted as a whole) followed by the label.
// Use Place to position it in parent space.
func Render(s Shape, st RenderState, opts RenderOptions) *vector.Group {
	style := s.Style.withDefaults()
	rs := ResolveStyle(style, st.IsDarkMode)

	body := vector.NewGroup()
	body.SetName("tl-shape")
	if st.IsGhost {
		body.Opacity = GhostedOpacity
		if opts.GhostOpacity > 0 {
			body.Opacity = opts.GhostOpacity
		}
	}
	if st.IsBinding {
		body.Add(bindingIndicator(rs.StrokeWidth, s.Size))
	}
	if style.IsHandDrawn() {
		body.Add(drawRectangle(s.ID, style, s.Size, rs, st.IsSelected)...)
	} else {
		body.Add(dashedRectangle(style, s.Size, rs, st.IsSelected)...)
	}

	out := vector.NewGroup(body)
	out.SetName("tl-rectangle")
	if s.Text != "" || st.IsEditing {
		out.Add(label(s, style, rs, opts.Fonts))
	}
	return out
}

// Place wraps a rendered group in the placement transform of s.
func Place(g *vector.Group, s Shape) *vector.Group {
	p := vector.NewGroup(g)
	p.SetTransform(Placement(s))
	return p
}

func bindingIndicator(sw float32, size vector.Size) vector.Node {
	r := vector.R(sw, sw, max(0, size.W-sw/2), max(0, size.H-sw/2))
	n := vector.NewRect(r, vector.Fill{}, vector.Stroke{Color: bindingColor, Width: BindingDistance * 2, Enabled: true})
	n.SetName("tl-binding-indicator")
	return n
}

func hitAreaName(filled bool) string {
	if filled {
		return "tl-fill-hitarea"
	}
	return "tl-stroke-hitarea"
}

func drawRectangle(id string, style Style, size vector.Size, rs ResolvedStyle, selected bool) []vector.Node {
	outline, _ := outlinePath(id, style, size)
	var nodes []vector.Node

	hit := vector.NewPath(outline, vector.Fill{}, vector.Stroke{Width: BindingDistance})
	hit.SetName(hitAreaName(selected))
	nodes = append(nodes, hit)

	if style.IsFilled {
		fill := vector.NewPath(outline, vector.Fill{Color: rs.Fill, Enabled: true}, vector.Stroke{})
		fill.SetName("tl-fill")
		nodes = append(nodes, fill)
	}
	stroke := vector.NewPath(outline, vector.Fill{}, vector.Stroke{
		Color:   rs.Stroke,
		Width:   rs.StrokeWidth,
		Cap:     vector.CapRound,
		Join:    vector.JoinRound,
		Enabled: true,
	})
	stroke.SetName("tl-stroke")
	return append(nodes, stroke)
}

func dashedRectangle(style Style, size vector.Size, rs ResolvedStyle, selected bool) []vector.Node {
	sw := 1 + rs.StrokeWidth*1.618
	w := max(0, size.W-sw/2)
	h := max(0, size.H-sw/2)
	box := vector.R(sw/2, sw/2, w, h)

	var nodes []vector.Node
	hit := vector.NewRect(box, vector.Fill{}, vector.Stroke{Width: BindingDistance})
	hit.SetName(hitAreaName(selected || style.IsFilled))
	nodes = append(nodes, hit)

	if style.IsFilled {
		fill := vector.NewRect(box, vector.Fill{Color: rs.Fill, Enabled: true}, vector.Stroke{})
		fill.SetName("tl-fill")
		nodes = append(nodes, fill)
	}

	edges := [4]struct {
		from, to vector.Pt
		length   float32
	}{
		{vector.Pt{X: sw / 2, Y: sw / 2}, vector.Pt{X: w, Y: sw / 2}, w - sw/2},
		{vector.Pt{X: w, Y: sw / 2}, vector.Pt{X: w, Y: h}, h - sw/2},
		{vector.Pt{X: w, Y: h}, vector.Pt{X: sw / 2, Y: h}, w - sw/2},
		{vector.Pt{X: sw / 2, Y: h}, vector.Pt{X: sw / 2, Y: sw / 2}, h - sw/2},
	}
	for _, e := range edges {
		dp := PerfectDash(e.length, rs.StrokeWidth*1.618, style.Dash, 1, true)
		ln := vector.NewLine(e.from, e.to, vector.Stroke{
			Color:      rs.Stroke,
			Width:      sw,
			Cap:        vector.CapRound,
			Enabled:    true,
			Dash:       dp.Array,
			DashOffset: dp.Offset,
		})
		ln.SetName("tl-edge")
		nodes = append(nodes, ln)
	}
	return nodes
}

// DashProps is a dash pattern for one stroked segment. A nil Array means
// the segment is drawn solid.
type DashProps struct {
	Array  []float32 // dash, gap
	Offset float32
}

// PerfectDash picks a dash pattern for a segment of the given length so the
// dashes fit a whole number of times. Dashed segments use dashes twice the
// stroke width; dotted segments use near-zero dashes with round caps. Other
// dash styles are solid. With outset the pattern is shifted by half a dash
// so both ends of the segment show half a dash.
func PerfectDash(length, strokeWidth float32, dash DashStyle, snap int, outset bool) DashProps {
	var dashLength, ratio, offset float32
	switch dash {
	case DashDashed:
		dashLength = strokeWidth * 2
		ratio = 1
		if outset {
			offset = dashLength / 2
		}
	case DashDotted:
		dashLength = strokeWidth / 100
		ratio = 100
	default:
		return DashProps{}
	}
	if snap < 1 {
		snap = 1
	}
	dashes := int(math.Floor(float64(length / dashLength / (2 * ratio))))
	dashes -= dashes % snap
	dashes = max(dashes, 4)
	div := float32(dashes)
	if !outset {
		div = float32(dashes - 1)
	}
	gap := max(dashLength, (length-float32(dashes)*dashLength)/div)
	return DashProps{Array: []float32{dashLength, gap}, Offset: offset}
}

// label lays out the shape text centered in its box.
func label(s Shape, style Style, rs ResolvedStyle, fonts textlayout.Provider) vector.Node {
	if fonts == nil {
		fonts = textlayout.BasicProvider{}
	}
	spec := ResolveFont(style)
	maxW := max(0, s.Size.W-2*LabelPadding)
	box, _ := textlayout.NewWordWrap(fonts).Layout([]textlayout.Span{{Text: s.Text, Font: spec}}, maxW)

	lines := make([]string, len(box.Lines))
	for i, l := range box.Lines {
		lines[i] = l.Text()
	}
	lh := box.Metrics.LineHeight()
	top := (s.Size.H - box.Height) / 2

	var x float32
	anchor := vector.AnchorMiddle
	switch style.TextAlign {
	case AlignStart:
		x, anchor = LabelPadding, vector.AnchorStart
	case AlignEnd:
		x, anchor = s.Size.W-LabelPadding, vector.AnchorEnd
	default:
		x = s.Size.W / 2
	}
	var left float32
	switch anchor {
	case vector.AnchorStart:
		left = x
	case vector.AnchorEnd:
		left = x - box.Width
	default:
		left = x - box.Width/2
	}

	n := vector.NewText(lines, vector.Pt{X: x, Y: top + box.Metrics.Ascent}, vector.Fill{Color: rs.Stroke, Enabled: true})
	n.LineHeight = lh
	n.FontFamily = spec.Family
	n.FontSize = spec.SizePt
	n.Anchor = anchor
	n.Box = vector.R(left, top, box.Width, box.Height)
	n.SetName("tl-label")
	if strings.TrimSpace(s.Text) == "" {
		n.Lines = nil
	}
	return n
}
