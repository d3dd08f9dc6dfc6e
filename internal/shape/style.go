/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package shape

// Style values and their resolution into concrete paint.

import (
	"shapekit/internal/textlayout"
	"shapekit/internal/vector"
)

type ColorStyle string

const (
	ColorWhite     ColorStyle = "white"
	ColorLightGray ColorStyle = "lightGray"
	ColorGray      ColorStyle = "gray"
	ColorBlack     ColorStyle = "black"
	ColorGreen     ColorStyle = "green"
	ColorCyan      ColorStyle = "cyan"
	ColorBlue      ColorStyle = "blue"
	ColorIndigo    ColorStyle = "indigo"
	ColorViolet    ColorStyle = "violet"
	ColorRed       ColorStyle = "red"
	ColorOrange    ColorStyle = "orange"
	ColorYellow    ColorStyle = "yellow"
)

type SizeStyle string

const (
	SizeSmall  SizeStyle = "small"
	SizeMedium SizeStyle = "medium"
	SizeLarge  SizeStyle = "large"
)

// DashStyle selects the outline variant. DashDraw is the hand-drawn wobble.
type DashStyle string

const (
	DashDraw   DashStyle = "draw"
	DashSolid  DashStyle = "solid"
	DashDashed DashStyle = "dashed"
	DashDotted DashStyle = "dotted"
)

type FontStyle string

const (
	FontScript FontStyle = "script"
	FontSans   FontStyle = "sans"
	FontSerif  FontStyle = "serif"
	FontMono   FontStyle = "mono"
)

type AlignStyle string

const (
	AlignStart  AlignStyle = "start"
	AlignMiddle AlignStyle = "middle"
	AlignEnd    AlignStyle = "end"
)

// Style is an immutable, comparable value; two shapes share a style when
// their Style values are ==.
type Style struct {
	Color     ColorStyle
	Size      SizeStyle
	Dash      DashStyle
	IsFilled  bool
	Scale     float32
	Font      FontStyle
	TextAlign AlignStyle
}

// DefaultStyle is the style of a freshly created shape.
var DefaultStyle = Style{
	Color:     ColorBlack,
	Size:      SizeSmall,
	Dash:      DashDraw,
	IsFilled:  false,
	Scale:     1,
	Font:      FontScript,
	TextAlign: AlignMiddle,
}

// withDefaults fills empty fields from DefaultStyle.
func (s Style) withDefaults() Style {
	if s.Color == "" {
		s.Color = DefaultStyle.Color
	}
	if s.Size == "" {
		s.Size = DefaultStyle.Size
	}
	if s.Dash == "" {
		s.Dash = DefaultStyle.Dash
	}
	if s.Scale <= 0 {
		s.Scale = DefaultStyle.Scale
	}
	if s.Font == "" {
		s.Font = DefaultStyle.Font
	}
	if s.TextAlign == "" {
		s.TextAlign = DefaultStyle.TextAlign
	}
	return s
}

// IsHandDrawn reports whether the style renders with the wobble outline.
func (s Style) IsHandDrawn() bool { return s.Dash == DashDraw }

var strokeWidths = map[SizeStyle]float32{
	SizeSmall:  2,
	SizeMedium: 3.5,
	SizeLarge:  5,
}

var fontSizes = map[SizeStyle]float32{
	SizeSmall:  28,
	SizeMedium: 48,
	SizeLarge:  96,
}

var baseColors = map[ColorStyle]vector.Color{
	ColorWhite:     vector.MustHex("#f0f1f3"),
	ColorLightGray: vector.MustHex("#c6cbd1"),
	ColorGray:      vector.MustHex("#788492"),
	ColorBlack:     vector.MustHex("#1d1d1d"),
	ColorGreen:     vector.MustHex("#36b24d"),
	ColorCyan:      vector.MustHex("#0e98ad"),
	ColorBlue:      vector.MustHex("#1c7ed6"),
	ColorIndigo:    vector.MustHex("#4263eb"),
	ColorViolet:    vector.MustHex("#7746f1"),
	ColorRed:       vector.MustHex("#ff2133"),
	ColorOrange:    vector.MustHex("#ff9433"),
	ColorYellow:    vector.MustHex("#ffc936"),
}

var (
	canvasLight = vector.MustHex("#fafafa")
	canvasDark  = vector.MustHex("#343d45")
)

type themePalette struct {
	strokes map[ColorStyle]vector.Color
	fills   map[ColorStyle]vector.Color
}

var lightPalette, darkPalette = buildPalettes()

func buildPalettes() (themePalette, themePalette) {
	light := themePalette{strokes: map[ColorStyle]vector.Color{}, fills: map[ColorStyle]vector.Color{}}
	dark := themePalette{strokes: map[ColorStyle]vector.Color{}, fills: map[ColorStyle]vector.Color{}}
	for k, c := range baseColors {
		light.strokes[k] = c
		light.fills[k] = lerpColor(c, canvasLight, 0.82)
		dark.strokes[k] = lerpColor(c, canvasDark, 0.1)
		dark.fills[k] = lerpColor(c, canvasDark, 0.82)
	}
	light.strokes[ColorWhite] = vector.MustHex("#1d1d1d")
	light.fills[ColorWhite] = vector.MustHex("#fefefe")
	dark.strokes[ColorWhite] = vector.MustHex("#cecece")
	dark.strokes[ColorBlack] = vector.MustHex("#cecece")
	return light, dark
}

func lerpColor(a, b vector.Color, t float32) vector.Color {
	l := func(x, y uint8) uint8 { return uint8(float32(x) + (float32(y)-float32(x))*t + 0.5) }
	return vector.Color{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: 255}
}

// ResolvedStyle is a Style turned into paint for one theme.
type ResolvedStyle struct {
	Stroke      vector.Color
	Fill        vector.Color // Transparent when the style is not filled
	StrokeWidth float32
}

// ResolveStyle maps a style to stroke/fill colors and stroke width for the
// light or dark theme. Unknown enum values fall back to the defaults.
func ResolveStyle(style Style, isDarkMode bool) ResolvedStyle {
	style = style.withDefaults()
	pal := lightPalette
	if isDarkMode {
		pal = darkPalette
	}
	stroke, ok := pal.strokes[style.Color]
	if !ok {
		stroke = pal.strokes[DefaultStyle.Color]
	}
	sw, ok := strokeWidths[style.Size]
	if !ok {
		sw = strokeWidths[DefaultStyle.Size]
	}
	out := ResolvedStyle{Stroke: stroke, Fill: vector.Transparent, StrokeWidth: sw}
	if style.IsFilled {
		fill, ok := pal.fills[style.Color]
		if !ok {
			fill = pal.fills[DefaultStyle.Color]
		}
		out.Fill = fill
	}
	return out
}

// ResolveFont returns the label font for a style: the preset family for the
// style's font, sized by size class and scale.
func ResolveFont(style Style) textlayout.FontSpec {
	style = style.withDefaults()
	preset, ok := textlayout.GetStyle(string(style.Font))
	if !ok {
		preset, _ = textlayout.GetStyle(string(DefaultStyle.Font))
	}
	size, ok := fontSizes[style.Size]
	if !ok {
		size = fontSizes[DefaultStyle.Size]
	}
	spec := preset.Font
	spec.SizePt = size * style.Scale
	return spec
}
