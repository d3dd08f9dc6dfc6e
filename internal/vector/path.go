/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Path commands and shapes.

import (
	"strconv"
	"strings"
)

type PathOp uint8

const (
	MoveTo PathOp = iota
	LineTo
	QuadTo  // quadratic bezier (cx, cy, x, y)
	CubicTo // cubic bezier (cx1, cy1, cx2, cy2, x, y)
	Close
)

type PathCmd struct {
	Op   PathOp
	Data [6]float32 // enough for cubic; unused slots are zero
}

type Path struct{ Cmds []PathCmd }

func (p *Path) MoveTo(x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: MoveTo, Data: [6]float32{x, y}})
}
func (p *Path) LineTo(x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: LineTo, Data: [6]float32{x, y}})
}
func (p *Path) QuadTo(cx, cy, x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: QuadTo, Data: [6]float32{cx, cy, x, y}})
}
func (p *Path) CubicTo(cx1, cy1, cx2, cy2, x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: CubicTo, Data: [6]float32{cx1, cy1, cx2, cy2, x, y}})
}
func (p *Path) Close() { p.Cmds = append(p.Cmds, PathCmd{Op: Close}) }

// Empty reports whether the path has no commands.
func (p *Path) Empty() bool { return len(p.Cmds) == 0 }

// SmoothPath builds a path through pts using quadratic segments whose end
// points are the midpoints between consecutive points, which keeps the curve
// tangent-continuous. Fewer than 4 points yields an empty path.
func SmoothPath(pts []Pt, closed bool) Path {
	var p Path
	if len(pts) < 4 {
		return p
	}
	p.MoveTo(pts[0].X, pts[0].Y)
	m := pts[1].Mid(pts[2])
	p.QuadTo(pts[1].X, pts[1].Y, m.X, m.Y)
	prevCtl, prevEnd := pts[1], m
	for i := 2; i < len(pts)-1; i++ {
		end := pts[i].Mid(pts[i+1])
		// smooth continuation: reflect the previous control point
		ctl := prevEnd.Mul(2).Sub(prevCtl)
		p.QuadTo(ctl.X, ctl.Y, end.X, end.Y)
		prevCtl, prevEnd = ctl, end
	}
	if closed {
		p.Close()
	}
	return p
}

// PolygonPath builds a straight-edged path through pts.
func PolygonPath(pts []Pt, closed bool) Path {
	var p Path
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
			continue
		}
		p.LineTo(pt.X, pt.Y)
	}
	if closed && len(pts) > 0 {
		p.Close()
	}
	return p
}

// Transform returns a copy of the path with every coordinate mapped by m.
func (p *Path) Transform(m Affine2D) Path {
	out := Path{Cmds: make([]PathCmd, len(p.Cmds))}
	for i, c := range p.Cmds {
		nc := PathCmd{Op: c.Op}
		for j := 0; j+1 < len(c.Data) && j < 2*c.Op.points(); j += 2 {
			q := m.Apply(Pt{c.Data[j], c.Data[j+1]})
			nc.Data[j], nc.Data[j+1] = q.X, q.Y
		}
		out.Cmds[i] = nc
	}
	return out
}

func (op PathOp) points() int {
	switch op {
	case MoveTo, LineTo:
		return 1
	case QuadTo:
		return 2
	case CubicTo:
		return 3
	default:
		return 0
	}
}

// SVG renders the path as an SVG path data string with coordinates rounded
// to two decimals, e.g. "M0,0 Q1,1 2,2 Z".
func (p *Path) SVG() string {
	var b strings.Builder
	for i, c := range p.Cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch c.Op {
		case MoveTo:
			b.WriteByte('M')
		case LineTo:
			b.WriteByte('L')
		case QuadTo:
			b.WriteByte('Q')
		case CubicTo:
			b.WriteByte('C')
		case Close:
			b.WriteByte('Z')
			continue
		}
		for j := 0; j < c.Op.points(); j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(fmtCoord(c.Data[2*j]))
			b.WriteByte(',')
			b.WriteString(fmtCoord(c.Data[2*j+1]))
		}
	}
	return b.String()
}

func fmtCoord(v float32) string {
	return strconv.FormatFloat(float64(FloatRound(v, 2)), 'f', -1, 32)
}

// Bounds returns an axis-aligned bounding box of the path using a simple
// approximation by considering control points. This is sufficient for UI layout
// and selection rectangles; exporters can use tighter bounds later.
func (p *Path) Bounds() Rect {
	minX, minY := float32(+1e9), float32(+1e9)
	maxX, maxY := float32(-1e9), float32(-1e9)
	for _, c := range p.Cmds {
		for j := 0; j < c.Op.points(); j++ {
			x, y := c.Data[2*j], c.Data[2*j+1]
			if x < minX {
				minX = x
			}
			if y < minY {
				minY = y
			}
			if x > maxX {
				maxX = x
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if minX > maxX || minY > maxY {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
