/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	xvector "golang.org/x/image/vector"

	"shapekit/internal/textlayout"
	"shapekit/internal/vector"
)

// maxPixels bounds the canvas so a runaway scale cannot exhaust memory.
const maxPixels = 1 << 26

// WritePNG rasterizes sc at opt.Scale pixels per scene unit.
func WritePNG(w io.Writer, sc Scene, opt Options) error {
	img, err := Rasterize(sc, opt)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Rasterize paints sc into a new image. Fills use the non-zero rule; strokes
// are built from per-segment quads with round or bevel joins.
func Rasterize(sc Scene, opt Options) (*image.RGBA, error) {
	s := opt.scale()
	pixW := int(math.Ceil(float64(sc.View.W * s)))
	pixH := int(math.Ceil(float64(sc.View.H * s)))
	if pixW <= 0 || pixH <= 0 {
		return nil, fmt.Errorf("empty canvas %dx%d", pixW, pixH)
	}
	if pixW*pixH > maxPixels {
		return nil, fmt.Errorf("canvas %dx%d too large", pixW, pixH)
	}
	img := image.NewRGBA(image.Rect(0, 0, pixW, pixH))
	if sc.Background.A > 0 {
		draw.Draw(img, img.Bounds(), image.NewUniform(toRGBA(sc.Background)), image.Point{}, draw.Src)
	}

	fonts := opt.Fonts
	if fonts == nil {
		fonts = textlayout.BasicProvider{}
	}
	toPx := viewTransform(sc.View, s)
	z := xvector.NewRasterizer(pixW, pixH)
	z.DrawOp = draw.Over
	for _, it := range flatten(sc.Root) {
		if it.text != nil {
			drawText(img, fonts, it, toPx)
			continue
		}
		p := it.path.Transform(toPx)
		if it.fill.Enabled {
			z.Reset(pixW, pixH)
			z.DrawOp = draw.Over
			addPath(z, p)
			z.Draw(img, img.Bounds(), image.NewUniform(paint(it.fill.Color, it.opacity)), image.Point{})
		}
		if it.stroke.Enabled && it.stroke.Width > 0 {
			st := it.stroke
			st.Width *= s
			for i := range st.Dash {
				st.Dash[i] *= s
			}
			st.DashOffset *= s
			z.Reset(pixW, pixH)
			z.DrawOp = draw.Over
			addStroke(z, p, st)
			z.Draw(img, img.Bounds(), image.NewUniform(paint(st.Color, it.opacity)), image.Point{})
		}
	}

	if opt.Guides {
		strokeRect(img, 0, 0, pixW-1, pixH-1, toRGBA(opt.guideColor()))
	}
	return img, nil
}

func addPath(z *xvector.Rasterizer, p vector.Path) {
	open := false
	for _, c := range p.Cmds {
		d := c.Data
		switch c.Op {
		case vector.MoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(d[0], d[1])
			open = true
		case vector.LineTo:
			z.LineTo(d[0], d[1])
		case vector.QuadTo:
			z.QuadTo(d[0], d[1], d[2], d[3])
		case vector.CubicTo:
			z.CubeTo(d[0], d[1], d[2], d[3], d[4], d[5])
		case vector.Close:
			z.ClosePath()
			open = false
		}
	}
	if open {
		z.ClosePath()
	}
}

// addStroke accumulates the outline of p stroked with st. Every polygon is
// emitted with the same winding so overlapping pieces saturate instead of
// cancelling.
func addStroke(z *xvector.Rasterizer, p vector.Path, st vector.Stroke) {
	hw := st.Width / 2
	lines, closed := polylines(p, 2)
	if len(st.Dash) > 0 {
		lines = dashLines(lines, closed, st.Dash, st.DashOffset)
		closed = make([]bool, len(lines))
	}
	for li, pts := range lines {
		if len(pts) == 1 {
			if st.Cap == vector.CapRound {
				addDisc(z, pts[0], hw)
			}
			continue
		}
		isClosed := closed[li] && len(pts) > 2
		if isClosed && pts[0] != pts[len(pts)-1] {
			pts = append(append([]vector.Pt(nil), pts...), pts[0])
		}
		n := len(pts)
		for i := 1; i < n; i++ {
			a, b := pts[i-1], pts[i]
			if !isClosed && st.Cap == vector.CapSquare {
				if i == 1 {
					a = extend(b, a, hw)
				}
				if i == n-1 {
					b = extend(a, b, hw)
				}
			}
			addSegment(z, a, b, hw)
		}
		for i := 1; i < n-1; i++ {
			addJoin(z, pts[i-1], pts[i], pts[i+1], hw, st.Join)
		}
		if isClosed {
			addJoin(z, pts[n-2], pts[0], pts[1], hw, st.Join)
		} else if st.Cap == vector.CapRound {
			addDisc(z, pts[0], hw)
			addDisc(z, pts[n-1], hw)
		}
	}
}

func extend(from, to vector.Pt, by float32) vector.Pt {
	l := dist(from, to)
	if l == 0 {
		return to
	}
	return to.Add(to.Sub(from).Mul(by / l))
}

func addSegment(z *xvector.Rasterizer, a, b vector.Pt, hw float32) {
	l := dist(a, b)
	if l == 0 {
		return
	}
	nx, ny := -(b.Y-a.Y)/l*hw, (b.X-a.X)/l*hw
	addPolygon(z, []vector.Pt{
		{X: a.X + nx, Y: a.Y + ny},
		{X: b.X + nx, Y: b.Y + ny},
		{X: b.X - nx, Y: b.Y - ny},
		{X: a.X - nx, Y: a.Y - ny},
	})
}

func addJoin(z *xvector.Rasterizer, prev, at, next vector.Pt, hw float32, join vector.LineJoin) {
	if join == vector.JoinRound {
		addDisc(z, at, hw)
		return
	}
	l1, l2 := dist(prev, at), dist(at, next)
	if l1 == 0 || l2 == 0 {
		return
	}
	n1 := vector.Pt{X: -(at.Y - prev.Y) / l1 * hw, Y: (at.X - prev.X) / l1 * hw}
	n2 := vector.Pt{X: -(next.Y - at.Y) / l2 * hw, Y: (next.X - at.X) / l2 * hw}
	// bevel on both sides; the inner one is covered by the segments anyway
	addPolygon(z, []vector.Pt{at, at.Add(n1), at.Add(n2)})
	addPolygon(z, []vector.Pt{at, at.Sub(n1), at.Sub(n2)})
}

func addDisc(z *xvector.Rasterizer, c vector.Pt, r float32) {
	if r <= 0 {
		return
	}
	const steps = 16
	pts := make([]vector.Pt, steps)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / steps
		pts[i] = vector.Pt{X: c.X + r*float32(math.Cos(a)), Y: c.Y + r*float32(math.Sin(a))}
	}
	addPolygon(z, pts)
}

// addPolygon emits pts as a closed polygon with positive signed area.
func addPolygon(z *xvector.Rasterizer, pts []vector.Pt) {
	if len(pts) < 3 {
		return
	}
	var area float32
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	if area == 0 {
		return
	}
	if area < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	z.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		z.LineTo(p.X, p.Y)
	}
	z.ClosePath()
}

// drawText renders each line at the face's native size and maps the glyph
// image into place with the full node-to-pixel transform.
func drawText(img *image.RGBA, fonts textlayout.Provider, it item, toPx vector.Affine2D) {
	t := it.text
	face, met := fonts.Resolve(textlayout.FontSpec{Family: t.FontFamily, SizePt: t.FontSize})
	k := met.Scale
	if k <= 0 {
		k = 1
	}
	fm := face.Metrics()
	asc, desc := fm.Ascent.Ceil(), fm.Descent.Ceil()
	col := image.NewUniform(paint(t.Fill().Color, it.opacity))
	m := toPx.Mul(it.xf)
	for i, line := range t.Lines {
		if line == "" {
			continue
		}
		adv := font.MeasureString(face, line).Ceil()
		if adv <= 0 || asc+desc <= 0 {
			continue
		}
		glyphs := image.NewRGBA(image.Rect(0, 0, adv, asc+desc))
		d := &font.Drawer{Dst: glyphs, Src: col, Face: face, Dot: fixed.P(0, asc)}
		d.DrawString(line)

		baseline := t.Origin.Y + float32(i)*t.LineHeight
		left := t.Origin.X - anchorShift(t.Anchor)*float32(adv)*k
		top := baseline - float32(asc)*k
		lm := m.Mul(vector.Translate(left, top)).Mul(vector.Scale(k, k))
		aff := f64.Aff3{float64(lm.A), float64(lm.C), float64(lm.E), float64(lm.B), float64(lm.D), float64(lm.F)}
		xdraw.BiLinear.Transform(img, aff, glyphs, glyphs.Bounds(), xdraw.Over, nil)
	}
}

// paint applies opacity to c as a non-premultiplied color.
func paint(c vector.Color, opacity float32) color.NRGBA {
	a := float32(c.A) * max(0, min(1, opacity))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a + 0.5)}
}

func toRGBA(c vector.Color) color.RGBA {
	n := color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
	return color.RGBAModel.Convert(n).(color.RGBA)
}

// strokeRect draws a 1px axis-aligned rectangle border inclusive of endpoints.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	// top and bottom
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	// left and right
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}
