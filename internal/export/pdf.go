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
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"

	"shapekit/internal/vector"
	"shapekit/internal/version"
)

// WritePDF writes sc as a single-page PDF. One scene unit is one point and
// the page is the size of the scene view. Text uses the built-in Helvetica
// so no fonts are embedded.
func WritePDF(w io.Writer, sc Scene, opt Options) error {
	v := sc.View
	if v.W <= 0 || v.H <= 0 {
		return fmt.Errorf("empty page %gx%g", v.W, v.H)
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(v.W), Ht: float64(v.H)},
	})
	if sc.Title != "" {
		pdf.SetTitle(sc.Title, true)
	}
	pdf.SetCreator("shapekit "+version.String(), false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)

	if sc.Background.A > 0 {
		setFillColor(pdf, sc.Background)
		setAlpha(pdf, sc.Background.A, 1)
		pdf.Rect(0, 0, float64(v.W), float64(v.H), "F")
	}

	toPage := viewTransform(v, 1)
	for _, it := range flatten(sc.Root) {
		if it.text != nil {
			pdfText(pdf, it, toPage)
			continue
		}
		p := it.path.Transform(toPage)
		if it.fill.Enabled {
			setFillColor(pdf, it.fill.Color)
			setAlpha(pdf, it.fill.Color.A, it.opacity)
			emitPath(pdf, p)
			pdf.DrawPath("F")
		}
		if st := it.stroke; st.Enabled && st.Width > 0 {
			setDrawColor(pdf, st.Color)
			setAlpha(pdf, st.Color.A, it.opacity)
			pdf.SetLineWidth(float64(st.Width))
			pdf.SetLineCapStyle(capName(st.Cap))
			pdf.SetLineJoinStyle(joinName(st.Join))
			dash := make([]float64, len(st.Dash))
			for i, d := range st.Dash {
				dash[i] = float64(d)
			}
			pdf.SetDashPattern(dash, float64(st.DashOffset))
			emitPath(pdf, p)
			pdf.DrawPath("D")
			pdf.SetDashPattern(nil, 0)
		}
	}

	if opt.Guides {
		setAlpha(pdf, 255, 1)
		setDrawColor(pdf, opt.guideColor())
		pdf.SetLineWidth(0.2)
		pdf.Rect(0, 0, float64(v.W), float64(v.H), "D")
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func emitPath(pdf *gofpdf.Fpdf, p vector.Path) {
	for _, c := range p.Cmds {
		d := c.Data
		switch c.Op {
		case vector.MoveTo:
			pdf.MoveTo(float64(d[0]), float64(d[1]))
		case vector.LineTo:
			pdf.LineTo(float64(d[0]), float64(d[1]))
		case vector.QuadTo:
			pdf.CurveTo(float64(d[0]), float64(d[1]), float64(d[2]), float64(d[3]))
		case vector.CubicTo:
			pdf.CurveBezierCubicTo(float64(d[0]), float64(d[1]), float64(d[2]), float64(d[3]), float64(d[4]), float64(d[5]))
		case vector.Close:
			pdf.ClosePath()
		}
	}
}

// pdfText places each line at its transformed baseline and rotates the
// text about that point. Skew in the node transform is not representable.
func pdfText(pdf *gofpdf.Fpdf, it item, toPage vector.Affine2D) {
	t := it.text
	m := toPage.Mul(it.xf)
	size := t.FontSize
	if size <= 0 {
		size = 12
	}
	pdf.SetFont("Helvetica", "", float64(size*scaleOf(m)))
	c := t.Fill().Color
	pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
	setAlpha(pdf, c.A, it.opacity)
	deg := rotationOf(m) * 180 / math.Pi
	for i, line := range t.Lines {
		if line == "" {
			continue
		}
		at := m.Apply(vector.Pt{X: t.Origin.X, Y: t.Origin.Y + float32(i)*t.LineHeight})
		x, y := float64(at.X), float64(at.Y)
		x -= float64(anchorShift(t.Anchor)) * pdf.GetStringWidth(line)
		pdf.TransformBegin()
		pdf.TransformRotate(-deg, float64(at.X), float64(at.Y))
		pdf.Text(x, y, line)
		pdf.TransformEnd()
	}
}

func setDrawColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func setAlpha(pdf *gofpdf.Fpdf, a uint8, opacity float32) {
	pdf.SetAlpha(float64(a)/255*float64(max(0, min(1, opacity))), "Normal")
}

func capName(c vector.LineCap) string {
	switch c {
	case vector.CapRound:
		return "round"
	case vector.CapSquare:
		return "square"
	default:
		return "butt"
	}
}

func joinName(j vector.LineJoin) string {
	switch j {
	case vector.JoinRound:
		return "round"
	case vector.JoinBevel:
		return "bevel"
	default:
		return "miter"
	}
}
