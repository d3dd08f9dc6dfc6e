/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Basic 2D geometry and transforms for resolution-independent drawing.
// Float values use float32 for compactness and to align with many UI libs.

import "math"

// Pt is a 2D point.
type Pt struct{ X, Y float32 }

func (p Pt) Add(o Pt) Pt            { return Pt{p.X + o.X, p.Y + o.Y} }
func (p Pt) Sub(o Pt) Pt            { return Pt{p.X - o.X, p.Y - o.Y} }
func (p Pt) Mul(k float32) Pt       { return Pt{p.X * k, p.Y * k} }
func (p Pt) Lerp(o Pt, t float32) Pt { return Pt{p.X + (o.X-p.X)*t, p.Y + (o.Y-p.Y)*t} }

// Mid returns the midpoint between p and o.
func (p Pt) Mid(o Pt) Pt { return p.Lerp(o, 0.5) }

// PointsBetween returns steps points from a to b inclusive of both ends,
// eased so that points bunch up toward the ends of the segment.
func PointsBetween(a, b Pt, steps int) []Pt {
	if steps < 2 {
		return []Pt{a, b}
	}
	out := make([]Pt, steps)
	for i := 0; i < steps; i++ {
		t := easeInOutSine(float32(i) / float32(steps-1))
		out[i] = a.Lerp(b, t)
	}
	return out
}

func easeInOutSine(t float32) float32 {
	return float32(-(math.Cos(math.Pi*float64(t)) - 1) / 2)
}

// Size is a width/height pair.
type Size struct{ W, H float32 }

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float32
	W, H float32
}

func R(x, y, w, h float32) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Min() Pt { return Pt{r.X, r.Y} }
func (r Rect) Max() Pt { return Pt{r.X + r.W, r.Y + r.H} }

func (r Rect) Contains(p Pt) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// Inset returns a rectangle inset by dx,dy on all sides (negative grows).
func (r Rect) Inset(dx, dy float32) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// Union returns the minimal rect containing both.
func (r Rect) Union(o Rect) Rect {
	minX := min(r.X, o.X)
	minY := min(r.Y, o.Y)
	maxX := max(r.X+r.W, o.X+o.W)
	maxY := max(r.Y+r.H, o.Y+o.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Bounds is an axis-aligned box carrying both corners and the extent.
// Width and Height are always MaxX-MinX and MaxY-MinY for boxes built with
// the constructors below.
type Bounds struct {
	MinX, MinY float32
	MaxX, MaxY float32
	Width      float32
	Height     float32
}

// BoundsFromCorners builds a box from two opposite corners in any order.
func BoundsFromCorners(a, b Pt) Bounds {
	minX, maxX := min(a.X, b.X), max(a.X, b.X)
	minY, maxY := min(a.Y, b.Y), max(a.Y, b.Y)
	return Bounds{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY, Width: maxX - minX, Height: maxY - minY}
}

// BoundsFromRect converts a Rect.
func BoundsFromRect(r Rect) Bounds {
	return Bounds{MinX: r.X, MinY: r.Y, MaxX: r.X + r.W, MaxY: r.Y + r.H, Width: r.W, Height: r.H}
}

// Rect converts the box back to origin+size form.
func (b Bounds) Rect() Rect { return Rect{X: b.MinX, Y: b.MinY, W: b.Width, H: b.Height} }

func (b Bounds) Min() Pt    { return Pt{b.MinX, b.MinY} }
func (b Bounds) Max() Pt    { return Pt{b.MaxX, b.MaxY} }
func (b Bounds) Center() Pt { return Pt{b.MinX + b.Width/2, b.MinY + b.Height/2} }

// Translate shifts the box by d.
func (b Bounds) Translate(d Pt) Bounds {
	b.MinX += d.X
	b.MaxX += d.X
	b.MinY += d.Y
	b.MaxY += d.Y
	return b
}

// Expand returns the smallest box containing both.
func (b Bounds) Expand(o Bounds) Bounds {
	return BoundsFromCorners(
		Pt{min(b.MinX, o.MinX), min(b.MinY, o.MinY)},
		Pt{max(b.MaxX, o.MaxX), max(b.MaxY, o.MaxY)},
	)
}

// Finite reports whether every field is a finite number.
func (b Bounds) Finite() bool {
	for _, v := range [...]float32{b.MinX, b.MinY, b.MaxX, b.MaxY, b.Width, b.Height} {
		if !IsFinite(v) {
			return false
		}
	}
	return true
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Affine2D represents a 2D affine transform as matrix:
// | a c e |
// | b d f |
// | 0 0 1 |
// stored as [a b c d e f].
type Affine2D struct{ A, B, C, D, E, F float32 }

var Identity = Affine2D{A: 1, D: 1}

func (m Affine2D) Mul(n Affine2D) Affine2D {
	return Affine2D{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

func (m Affine2D) Apply(p Pt) Pt {
	return Pt{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// ApplyBounds maps the four corners of b and returns their axis-aligned box.
func (m Affine2D) ApplyBounds(b Bounds) Bounds {
	corners := [4]Pt{{b.MinX, b.MinY}, {b.MaxX, b.MinY}, {b.MinX, b.MaxY}, {b.MaxX, b.MaxY}}
	out := BoundsFromCorners(m.Apply(corners[0]), m.Apply(corners[3]))
	for _, c := range corners[1:3] {
		p := m.Apply(c)
		out = out.Expand(Bounds{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y})
	}
	return out
}

// Invert computes the inverse of an affine matrix. A singular matrix yields Identity.
func (m Affine2D) Invert() Affine2D {
	det := m.A*m.D - m.B*m.C
	if det == 0 {
		return Identity
	}
	invDet := 1 / det
	return Affine2D{
		A: m.D * invDet,
		B: -m.B * invDet,
		C: -m.C * invDet,
		D: m.A * invDet,
		E: (m.C*m.F - m.D*m.E) * invDet,
		F: (m.B*m.E - m.A*m.F) * invDet,
	}
}

func Translate(tx, ty float32) Affine2D { return Affine2D{A: 1, D: 1, E: tx, F: ty} }
func Scale(sx, sy float32) Affine2D     { return Affine2D{A: sx, D: sy} }
func Rotate(rad float32) Affine2D {
	c := float32(math.Cos(float64(rad)))
	s := float32(math.Sin(float64(rad)))
	return Affine2D{A: c, B: s, C: -s, D: c}
}

// RotateAround rotates by rad about the pivot c.
func RotateAround(rad float32, c Pt) Affine2D {
	return Translate(c.X, c.Y).Mul(Rotate(rad)).Mul(Translate(-c.X, -c.Y))
}

func min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
func max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// FloatRound rounds v to n decimal places deterministically.
func FloatRound(v float32, places int) float32 {
	if places < 0 {
		return v
	}
	pow := float32(math.Pow(10, float64(places)))
	return float32(math.Round(float64(v*pow))) / pow
}
