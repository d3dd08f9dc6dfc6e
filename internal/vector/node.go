/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Node is a scene-graph item that can be rendered by different backends.
// It supports basic transforms, styling, bounds, and hit-testing.
// Name is an optional class-like tag exporters may emit (e.g. an SVG class).

type Node interface {
	Bounds() Rect
	Transform() Affine2D
	SetTransform(Affine2D)
	Fill() Fill
	Stroke() Stroke
	SetFill(Fill)
	SetStroke(Stroke)
	Name() string
	SetName(string)
	Hit(p Pt) bool
}

type baseNode struct {
	xf     Affine2D
	fill   Fill
	stroke Stroke
	name   string
}

func (b *baseNode) Transform() Affine2D     { return b.xf }
func (b *baseNode) SetTransform(m Affine2D) { b.xf = m }
func (b *baseNode) Fill() Fill              { return b.fill }
func (b *baseNode) Stroke() Stroke          { return b.stroke }
func (b *baseNode) SetFill(f Fill)          { b.fill = f }
func (b *baseNode) SetStroke(s Stroke)      { b.stroke = s }
func (b *baseNode) Name() string            { return b.name }
func (b *baseNode) SetName(n string)        { b.name = n }

// transformedBounds maps the corners of r through xf.
func transformedBounds(xf Affine2D, r Rect) Rect {
	return xf.ApplyBounds(BoundsFromRect(r)).Rect()
}

// RectNode draws an axis-aligned rectangle before transform.
type RectNode struct {
	baseNode
	Rect Rect
}

func NewRect(r Rect, f Fill, s Stroke) *RectNode {
	return &RectNode{baseNode: baseNode{xf: Identity, fill: f, stroke: s}, Rect: r}
}

func (n *RectNode) Bounds() Rect { return transformedBounds(n.xf, n.Rect) }

func (n *RectNode) Hit(p Pt) bool {
	return n.Rect.Contains(n.xf.Invert().Apply(p))
}

// RoundedRectNode uses uniform radii for simplicity.
type RoundedRectNode struct {
	baseNode
	Rect   Rect
	Radius float32
}

func NewRoundedRect(r Rect, radius float32, f Fill, s Stroke) *RoundedRectNode {
	return &RoundedRectNode{baseNode: baseNode{xf: Identity, fill: f, stroke: s}, Rect: r, Radius: radius}
}

func (n *RoundedRectNode) Bounds() Rect { return transformedBounds(n.xf, n.Rect) }
func (n *RoundedRectNode) Hit(p Pt) bool {
	q := n.xf.Invert().Apply(p)
	// quick reject outside rect
	if !n.Rect.Contains(q) {
		return false
	}
	// If inside the core (rect inset by r), it's a hit
	core := n.Rect.Inset(n.Radius, n.Radius)
	if core.W > 0 && core.H > 0 && core.Contains(q) {
		return true
	}
	// Otherwise test the four quarter-circles
	cx := []float32{n.Rect.X + n.Radius, n.Rect.X + n.Rect.W - n.Radius}
	cy := []float32{n.Rect.Y + n.Radius, n.Rect.Y + n.Rect.H - n.Radius}
	r2 := n.Radius * n.Radius
	for _, x := range cx {
		for _, y := range cy {
			dx := q.X - x
			dy := q.Y - y
			if dx*dx+dy*dy <= r2 {
				return true
			}
		}
	}
	// edge bands between the corners
	if q.X >= n.Rect.X+n.Radius && q.X <= n.Rect.X+n.Rect.W-n.Radius {
		return true
	}
	return q.Y >= n.Rect.Y+n.Radius && q.Y <= n.Rect.Y+n.Rect.H-n.Radius
}

// LineNode is a single straight segment.
type LineNode struct {
	baseNode
	From, To Pt
}

func NewLine(from, to Pt, s Stroke) *LineNode {
	return &LineNode{baseNode: baseNode{xf: Identity, stroke: s}, From: from, To: to}
}

func (n *LineNode) Bounds() Rect {
	return n.xf.ApplyBounds(BoundsFromCorners(n.From, n.To)).Rect()
}

// Hit tests against the stroke's half width around the segment.
func (n *LineNode) Hit(p Pt) bool {
	q := n.xf.Invert().Apply(p)
	d := n.To.Sub(n.From)
	l2 := d.X*d.X + d.Y*d.Y
	t := float32(0)
	if l2 > 0 {
		t = ((q.X-n.From.X)*d.X + (q.Y-n.From.Y)*d.Y) / l2
		t = max(0, min(1, t))
	}
	c := n.From.Lerp(n.To, t)
	dx, dy := q.X-c.X, q.Y-c.Y
	hw := max(n.stroke.Width/2, 0.5)
	return dx*dx+dy*dy <= hw*hw
}

// PathNode references a path geometry.
type PathNode struct {
	baseNode
	Path Path
	bbox Rect // cached approx bounds
}

func NewPath(p Path, f Fill, s Stroke) *PathNode {
	return &PathNode{baseNode: baseNode{xf: Identity, fill: f, stroke: s}, Path: p, bbox: p.Bounds()}
}

func (n *PathNode) Bounds() Rect { return transformedBounds(n.xf, n.bbox) }

func (n *PathNode) Hit(p Pt) bool {
	// Simple bbox hit; exporters or advanced tools can do point-in-path later.
	return n.bbox.Contains(n.xf.Invert().Apply(p))
}

// TextAnchor controls horizontal alignment of text lines.
type TextAnchor uint8

const (
	AnchorStart TextAnchor = iota
	AnchorMiddle
	AnchorEnd
)

// TextNode holds laid-out text lines; Origin is the baseline of the first line.
type TextNode struct {
	baseNode
	Lines      []string
	Origin     Pt
	LineHeight float32
	FontFamily string
	FontSize   float32
	Anchor     TextAnchor
	Box        Rect // layout box used for bounds and hit-testing
}

func NewText(lines []string, origin Pt, fill Fill) *TextNode {
	return &TextNode{baseNode: baseNode{xf: Identity, fill: fill}, Lines: lines, Origin: origin}
}

func (n *TextNode) Bounds() Rect  { return transformedBounds(n.xf, n.Box) }
func (n *TextNode) Hit(p Pt) bool { return n.Box.Contains(n.xf.Invert().Apply(p)) }

// Group is a container for child nodes with its own transform.
type Group struct {
	baseNode
	Children []Node
	// Opacity applies to the whole subtree; zero is treated as fully opaque.
	Opacity float32
}

func NewGroup(children ...Node) *Group {
	g := &Group{baseNode: baseNode{xf: Identity}, Opacity: 1}
	g.Children = append(g.Children, children...)
	return g
}

// Add appends children in paint order.
func (g *Group) Add(children ...Node) { g.Children = append(g.Children, children...) }

// EffectiveOpacity returns Opacity with the zero value mapped to 1.
func (g *Group) EffectiveOpacity() float32 {
	if g.Opacity <= 0 {
		return 1
	}
	return g.Opacity
}

func (g *Group) Bounds() Rect {
	var b Rect
	first := true
	for _, c := range g.Children {
		cb := c.Bounds()
		if first {
			b = cb
			first = false
		} else {
			b = b.Union(cb)
		}
	}
	return transformedBounds(g.xf, b)
}

func (g *Group) Hit(p Pt) bool {
	q := g.xf.Invert().Apply(p)
	for i := len(g.Children) - 1; i >= 0; i-- { // top-most first
		if g.Children[i].Hit(q) {
			return true
		}
	}
	return false
}
