/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// Abstractions for text measurement and line breaking of shape labels.
// All measurement sits behind deterministic interfaces that can be
// implemented with different engines.

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FontSpec describes a requested font.
type FontSpec struct {
	Family string // logical family name
	SizePt float32
	Weight int // 100..900
	Italic bool
}

// Metrics provides font metrics in pixels for the resolved face.
// Scale multiplies advances measured with the face; zero means 1. It lets a
// fixed-size fallback face approximate any requested size.
type Metrics struct {
	Ascent, Descent, LineGap float32
	Scale                    float32
}

func (m Metrics) scale() float32 {
	if m.Scale <= 0 {
		return 1
	}
	return m.Scale
}

// LineHeight is ascent + descent + gap.
func (m Metrics) LineHeight() float32 { return m.Ascent + m.Descent + m.LineGap }

// Span is a run of text with the same font/style.
type Span struct {
	Text string
	Font FontSpec
}

// Line is a single laid out line with width and ascent/descent.
type Line struct {
	Spans   []Span
	Width   float32
	Ascent  float32
	Descent float32
}

// Text joins the spans of the line, trimming trailing spaces.
func (l Line) Text() string {
	var b strings.Builder
	for _, sp := range l.Spans {
		b.WriteString(sp.Text)
	}
	return strings.TrimRight(b.String(), " ")
}

// TextBox is the result of laying out text into a box width.
type TextBox struct {
	Lines   []Line
	Width   float32
	Height  float32
	Metrics Metrics
}

// Provider maps FontSpec to a concrete font.Face.
type Provider interface {
	Resolve(FontSpec) (font.Face, Metrics)
}

// Layouter performs line-breaking and measurement.
type Layouter interface {
	Layout(spans []Span, maxWidth float32) (TextBox, error)
}

// basicNominal is the pixel height of basicfont.Face7x13.
const basicNominal = 13

// BasicProvider uses x/image/basicfont Face7x13 for deterministic tests.
// Requested sizes are honored through Metrics.Scale.
type BasicProvider struct{}

func (BasicProvider) Resolve(spec FontSpec) (font.Face, Metrics) {
	f := basicfont.Face7x13
	m := f.Metrics()
	k := float32(1)
	if spec.SizePt > 0 {
		k = spec.SizePt / basicNominal
	}
	return f, Metrics{
		Ascent:  float32(m.Ascent.Round()) * k,
		Descent: float32(m.Descent.Round()) * k,
		LineGap: float32(m.Height.Round()-m.Ascent.Round()-m.Descent.Round()) * k,
		Scale:   k,
	}
}

// WordWrapLayouter is a simple layouter that breaks on spaces; it does not
// perform shaping or hyphenation.
type WordWrapLayouter struct{ Provider Provider }

func NewWordWrap(provider Provider) *WordWrapLayouter { return &WordWrapLayouter{Provider: provider} }

func (l *WordWrapLayouter) Layout(spans []Span, maxWidth float32) (TextBox, error) {
	if l.Provider == nil {
		l.Provider = BasicProvider{}
	}
	// Metrics come from the first span; labels use a single font per box.
	var first FontSpec
	if len(spans) > 0 {
		first = spans[0].Font
	}
	face, met := l.Provider.Resolve(first)
	drawer := &font.Drawer{Face: face}
	k := met.scale()
	cur := Line{Ascent: met.Ascent, Descent: met.Descent}
	box := TextBox{Metrics: met}
	addLine := func() {
		box.Lines = append(box.Lines, cur)
		if cur.Width > box.Width {
			box.Width = cur.Width
		}
		box.Height += met.LineHeight()
		cur = Line{Ascent: met.Ascent, Descent: met.Descent}
	}
	for _, sp := range spans {
		if sp.Text == "" {
			continue
		}
		start := 0
		for i := 0; i <= len(sp.Text); i++ {
			if i == len(sp.Text) || sp.Text[i] == ' ' || sp.Text[i] == '\n' { // word boundary
				word := sp.Text[start:i]
				space := byte(0)
				if i < len(sp.Text) {
					space = sp.Text[i]
				}
				w := advance(drawer, word) * k
				// if word alone exceeds maxWidth, force on new line
				if cur.Width > 0 && cur.Width+w > maxWidth && maxWidth > 0 {
					addLine()
				}
				if word != "" {
					cur.Spans = append(cur.Spans, Span{Text: word, Font: sp.Font})
					cur.Width += w
				}
				if space == ' ' {
					cur.Spans = append(cur.Spans, Span{Text: " ", Font: sp.Font})
					cur.Width += advance(drawer, " ") * k
				} else if space == '\n' {
					addLine()
				}
				start = i + 1
			}
		}
	}
	// flush last line
	if len(cur.Spans) > 0 || len(box.Lines) == 0 {
		addLine()
	}
	return box, nil
}

func advance(d *font.Drawer, s string) float32 {
	return float32(d.MeasureString(s) >> 6) // fixed.Int26_6 to px
}

// Measure provides a quick way to measure text width/height without line-breaks.
func Measure(provider Provider, spans []Span) (w, h float32) {
	if provider == nil {
		provider = BasicProvider{}
	}
	var width, lineH float32
	for _, sp := range spans {
		face, met := provider.Resolve(sp.Font)
		d := &font.Drawer{Face: face}
		width += advance(d, sp.Text) * met.scale()
		lineH = max(lineH, met.Ascent+met.Descent)
	}
	if len(spans) == 0 {
		_, met := provider.Resolve(FontSpec{})
		lineH = met.Ascent + met.Descent
	}
	return width, lineH
}
