/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"shapekit/internal/vector"
)

// WriteSVG writes sc as a standalone SVG document. The viewBox is the scene
// view; width and height are the view scaled by opt.Scale. Group structure,
// transforms and node names are preserved.
func WriteSVG(w io.Writer, sc Scene, opt Options) error {
	var buf bytes.Buffer
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(&buf, format, args...)
	}

	v := sc.View
	s := opt.scale()
	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%spx\" height=\"%spx\" viewBox=\"%s %s %s %s\">\n",
		num(v.W*s), num(v.H*s), num(v.X), num(v.Y), num(v.W), num(v.H))
	if sc.Title != "" {
		wf("  <title>%s</title>\n", escText(sc.Title))
	}
	if sc.Background.A > 0 {
		wf("  <rect x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\"%s/>\n", num(v.X), num(v.Y), num(v.W), num(v.H),
			fillAttrs(vector.Fill{Color: sc.Background, Enabled: true}))
	}
	if sc.Root != nil {
		writeNode(wf, sc.Root, "  ")
	}
	if opt.Guides {
		wf("  <rect x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"%s\"/>\n",
			num(v.X), num(v.Y), num(v.W), num(v.H), opt.guideColor(), num(0.5/s))
	}
	wf("</svg>\n")
	if werr != nil {
		return fmt.Errorf("build svg: %w", werr)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func writeNode(wf func(string, ...any), n vector.Node, indent string) {
	common := transformAttr(n.Transform()) + classAttr(n.Name())
	switch t := n.(type) {
	case *vector.Group:
		if op := t.EffectiveOpacity(); op < 1 {
			common += " opacity=\"" + num(op) + "\""
		}
		wf("%s<g%s>\n", indent, common)
		for _, c := range t.Children {
			writeNode(wf, c, indent+"  ")
		}
		wf("%s</g>\n", indent)
	case *vector.RectNode:
		r := t.Rect
		wf("%s<rect x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\"%s%s/>\n", indent,
			num(r.X), num(r.Y), num(r.W), num(r.H), common, paintAttrs(n))
	case *vector.RoundedRectNode:
		r := t.Rect
		wf("%s<rect x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" rx=\"%s\" ry=\"%s\"%s%s/>\n", indent,
			num(r.X), num(r.Y), num(r.W), num(r.H), num(t.Radius), num(t.Radius), common, paintAttrs(n))
	case *vector.LineNode:
		wf("%s<line x1=\"%s\" y1=\"%s\" x2=\"%s\" y2=\"%s\"%s%s/>\n", indent,
			num(t.From.X), num(t.From.Y), num(t.To.X), num(t.To.Y), common, paintAttrs(n))
	case *vector.PathNode:
		if t.Path.Empty() {
			return
		}
		wf("%s<path d=\"%s\"%s%s/>\n", indent, t.Path.SVG(), common, paintAttrs(n))
	case *vector.TextNode:
		if len(t.Lines) == 0 {
			return
		}
		family := t.FontFamily
		if family == "" {
			family = "sans-serif"
		}
		wf("%s<text x=\"%s\" y=\"%s\" font-family=\"%s\" font-size=\"%s\" text-anchor=\"%s\"%s%s>", indent,
			num(t.Origin.X), num(t.Origin.Y), escAttr(family), num(t.FontSize), anchorName(t.Anchor), common, fillAttrs(t.Fill()))
		for i, line := range t.Lines {
			dy := "0"
			if i > 0 {
				dy = num(t.LineHeight)
			}
			wf("<tspan x=\"%s\" dy=\"%s\">%s</tspan>", num(t.Origin.X), dy, escText(line))
		}
		wf("</text>\n")
	}
}

func paintAttrs(n vector.Node) string {
	return fillAttrs(n.Fill()) + strokeAttrs(n.Stroke())
}

func fillAttrs(f vector.Fill) string {
	if !f.Enabled {
		return " fill=\"none\""
	}
	out := " fill=\"" + f.Color.String() + "\""
	if f.Color.A < 255 {
		out += " fill-opacity=\"" + num(float32(f.Color.A)/255) + "\""
	}
	if f.Rule == vector.EvenOdd {
		out += " fill-rule=\"evenodd\""
	}
	return out
}

func strokeAttrs(s vector.Stroke) string {
	if !s.Enabled || s.Width <= 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, " stroke=\"%s\" stroke-width=\"%s\"", s.Color, num(s.Width))
	if s.Color.A < 255 {
		fmt.Fprintf(&b, " stroke-opacity=\"%s\"", num(float32(s.Color.A)/255))
	}
	switch s.Cap {
	case vector.CapRound:
		b.WriteString(" stroke-linecap=\"round\"")
	case vector.CapSquare:
		b.WriteString(" stroke-linecap=\"square\"")
	}
	switch s.Join {
	case vector.JoinRound:
		b.WriteString(" stroke-linejoin=\"round\"")
	case vector.JoinBevel:
		b.WriteString(" stroke-linejoin=\"bevel\"")
	}
	if len(s.Dash) > 0 {
		parts := make([]string, len(s.Dash))
		for i, d := range s.Dash {
			parts[i] = num(d)
		}
		fmt.Fprintf(&b, " stroke-dasharray=\"%s\"", strings.Join(parts, " "))
		if s.DashOffset != 0 {
			fmt.Fprintf(&b, " stroke-dashoffset=\"%s\"", num(s.DashOffset))
		}
	}
	return b.String()
}

func transformAttr(m vector.Affine2D) string {
	if m == vector.Identity || m == (vector.Affine2D{}) {
		return ""
	}
	return fmt.Sprintf(" transform=\"matrix(%s %s %s %s %s %s)\"", num(m.A), num(m.B), num(m.C), num(m.D), num(m.E), num(m.F))
}

func classAttr(name string) string {
	if name == "" {
		return ""
	}
	return " class=\"" + escAttr(name) + "\""
}

func anchorName(a vector.TextAnchor) string {
	switch a {
	case vector.AnchorMiddle:
		return "middle"
	case vector.AnchorEnd:
		return "end"
	default:
		return "start"
	}
}

// num formats v with at most four decimals and no trailing zeros.
func num(v float32) string {
	return strconv.FormatFloat(float64(vector.FloatRound(v, 4)), 'f', -1, 32)
}

func escAttr(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '"':
			out = append(out, "&quot;"...)
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '\n':
			out = append(out, ' ')
		case '\r':
			// skip
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}

func escText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '>':
			out = append(out, "&gt;"...)
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
