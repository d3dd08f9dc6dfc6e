/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"math"

	"shapekit/internal/vector"
)

// item is one paint operation in page space, in paint order. Exactly one of
// path (shape) or text is set.
type item struct {
	path    vector.Path
	fill    vector.Fill
	stroke  vector.Stroke
	opacity float32

	text *vector.TextNode
	xf   vector.Affine2D // text node to page
}

// flatten walks the scene graph and returns its visible paint operations
// with transforms and group opacity applied. Stroke widths and dash lengths
// are scaled by the transform's average scale factor.
func flatten(root *vector.Group) []item {
	if root == nil {
		return nil
	}
	var out []item
	var walk func(n vector.Node, parent vector.Affine2D, op float32)
	walk = func(n vector.Node, parent vector.Affine2D, op float32) {
		xf := parent.Mul(n.Transform())
		switch t := n.(type) {
		case *vector.Group:
			o := op * t.EffectiveOpacity()
			for _, c := range t.Children {
				walk(c, xf, o)
			}
		case *vector.TextNode:
			if len(t.Lines) == 0 || !t.Fill().Enabled {
				return
			}
			out = append(out, item{text: t, xf: xf, opacity: op})
		default:
			f, s := n.Fill(), n.Stroke()
			visibleStroke := s.Enabled && s.Width > 0
			if !f.Enabled && !visibleStroke {
				return
			}
			p, ok := nodePath(n)
			if !ok || p.Empty() {
				return
			}
			if visibleStroke {
				k := scaleOf(xf)
				s.Width *= k
				if len(s.Dash) > 0 {
					d := make([]float32, len(s.Dash))
					for i, v := range s.Dash {
						d[i] = v * k
					}
					s.Dash = d
					s.DashOffset *= k
				}
			} else {
				s = vector.Stroke{}
			}
			out = append(out, item{path: p.Transform(xf), fill: f, stroke: s, opacity: op})
		}
	}
	walk(root, vector.Identity, 1)
	return out
}

// nodePath converts a shape node to its outline in node coordinates.
func nodePath(n vector.Node) (vector.Path, bool) {
	switch t := n.(type) {
	case *vector.RectNode:
		return rectPath(t.Rect), true
	case *vector.RoundedRectNode:
		return roundedRectPath(t.Rect, t.Radius), true
	case *vector.LineNode:
		var p vector.Path
		p.MoveTo(t.From.X, t.From.Y)
		p.LineTo(t.To.X, t.To.Y)
		return p, true
	case *vector.PathNode:
		return t.Path, true
	default:
		return vector.Path{}, false
	}
}

func rectPath(r vector.Rect) vector.Path {
	return vector.PolygonPath([]vector.Pt{
		{X: r.X, Y: r.Y}, {X: r.X + r.W, Y: r.Y}, {X: r.X + r.W, Y: r.Y + r.H}, {X: r.X, Y: r.Y + r.H},
	}, true)
}

// roundedRectPath uses quadratic corners; the radius is limited to half the
// shorter side.
func roundedRectPath(r vector.Rect, radius float32) vector.Path {
	rad := min(radius, r.W/2, r.H/2)
	if rad <= 0 {
		return rectPath(r)
	}
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.W, r.Y+r.H
	var p vector.Path
	p.MoveTo(x0+rad, y0)
	p.LineTo(x1-rad, y0)
	p.QuadTo(x1, y0, x1, y0+rad)
	p.LineTo(x1, y1-rad)
	p.QuadTo(x1, y1, x1-rad, y1)
	p.LineTo(x0+rad, y1)
	p.QuadTo(x0, y1, x0, y1-rad)
	p.LineTo(x0, y0+rad)
	p.QuadTo(x0, y0, x0+rad, y0)
	p.Close()
	return p
}

// scaleOf is the geometric mean of the transform's axis scales.
func scaleOf(m vector.Affine2D) float32 {
	det := float64(m.A*m.D - m.B*m.C)
	return float32(math.Sqrt(math.Abs(det)))
}

// rotationOf is the rotation angle of the transform's x axis in radians.
func rotationOf(m vector.Affine2D) float64 {
	return math.Atan2(float64(m.B), float64(m.A))
}

// anchorShift is the fraction of a line's width left of its anchor.
func anchorShift(a vector.TextAnchor) float32 {
	switch a {
	case vector.AnchorMiddle:
		return 0.5
	case vector.AnchorEnd:
		return 1
	default:
		return 0
	}
}

// viewTransform maps page coordinates into output coordinates of a view
// scaled by s.
func viewTransform(view vector.Rect, s float32) vector.Affine2D {
	return vector.Scale(s, s).Mul(vector.Translate(-view.X, -view.Y))
}

// polylines flattens a path into point lists, one per subpath. Curves are
// split into straight segments of roughly tol length.
func polylines(p vector.Path, tol float32) (lines [][]vector.Pt, closed []bool) {
	var cur []vector.Pt
	var start vector.Pt
	flush := func(c bool) {
		if len(cur) > 0 {
			lines = append(lines, cur)
			closed = append(closed, c)
		}
		cur = nil
	}
	last := func() vector.Pt {
		if len(cur) == 0 {
			return start
		}
		return cur[len(cur)-1]
	}
	for _, c := range p.Cmds {
		switch c.Op {
		case vector.MoveTo:
			flush(false)
			start = vector.Pt{X: c.Data[0], Y: c.Data[1]}
			cur = []vector.Pt{start}
		case vector.LineTo:
			if len(cur) == 0 {
				cur = []vector.Pt{start}
			}
			cur = append(cur, vector.Pt{X: c.Data[0], Y: c.Data[1]})
		case vector.QuadTo:
			p0 := last()
			if len(cur) == 0 {
				cur = []vector.Pt{p0}
			}
			ctl := vector.Pt{X: c.Data[0], Y: c.Data[1]}
			end := vector.Pt{X: c.Data[2], Y: c.Data[3]}
			n := segments(dist(p0, ctl)+dist(ctl, end), tol)
			for i := 1; i <= n; i++ {
				t := float32(i) / float32(n)
				a := p0.Lerp(ctl, t)
				b := ctl.Lerp(end, t)
				cur = append(cur, a.Lerp(b, t))
			}
		case vector.CubicTo:
			p0 := last()
			if len(cur) == 0 {
				cur = []vector.Pt{p0}
			}
			c1 := vector.Pt{X: c.Data[0], Y: c.Data[1]}
			c2 := vector.Pt{X: c.Data[2], Y: c.Data[3]}
			end := vector.Pt{X: c.Data[4], Y: c.Data[5]}
			n := segments(dist(p0, c1)+dist(c1, c2)+dist(c2, end), tol)
			for i := 1; i <= n; i++ {
				t := float32(i) / float32(n)
				a, b, d := p0.Lerp(c1, t), c1.Lerp(c2, t), c2.Lerp(end, t)
				ab, bd := a.Lerp(b, t), b.Lerp(d, t)
				cur = append(cur, ab.Lerp(bd, t))
			}
		case vector.Close:
			if len(cur) > 0 {
				start = cur[0]
			}
			flush(true)
		}
	}
	flush(false)
	return lines, closed
}

func segments(length, tol float32) int {
	if tol <= 0 {
		tol = 1
	}
	n := int(math.Ceil(float64(length / tol)))
	return max(1, min(n, 64))
}

func dist(a, b vector.Pt) float32 {
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	return float32(math.Hypot(dx, dy))
}

// dashLines splits polylines into the "on" runs of a dash pattern. An empty
// pattern returns the input unchanged; closed lines are opened first.
func dashLines(lines [][]vector.Pt, closed []bool, dash []float32, offset float32) [][]vector.Pt {
	var total float32
	for _, d := range dash {
		total += max(d, 0)
	}
	if len(dash) == 0 || total <= 0 {
		return lines
	}
	if len(dash)%2 == 1 {
		dash = append(append([]float32(nil), dash...), dash...)
	}
	var out [][]vector.Pt
	for li, pts := range lines {
		if closed[li] && len(pts) > 1 && pts[0] != pts[len(pts)-1] {
			pts = append(append([]vector.Pt(nil), pts...), pts[0])
		}
		// position in the pattern
		phase := float32(math.Mod(float64(offset), float64(total)))
		if phase < 0 {
			phase += total
		}
		idx := 0
		for phase >= dash[idx] {
			phase -= dash[idx]
			idx = (idx + 1) % len(dash)
		}
		left := dash[idx] - phase
		on := idx%2 == 0
		var run []vector.Pt
		if on && len(pts) > 0 {
			run = []vector.Pt{pts[0]}
		}
		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			segLen := dist(a, b)
			pos := float32(0)
			for segLen-pos > left {
				pos += left
				p := a.Lerp(b, pos/segLen)
				if on {
					run = append(run, p)
					out = append(out, run)
					run = nil
				} else {
					run = []vector.Pt{p}
				}
				on = !on
				idx = (idx + 1) % len(dash)
				left = dash[idx]
			}
			left -= segLen - pos
			if on {
				run = append(run, b)
			}
		}
		if on && len(run) > 0 {
			out = append(out, run)
		}
	}
	return out
}
