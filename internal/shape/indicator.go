/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package shape

import (
	"fmt"
	"strconv"

	"shapekit/internal/vector"
)

type IndicatorKind uint8

const (
	IndicatorRect IndicatorKind = iota
	IndicatorOutline
)

// Indicator is the selection outline of a shape in shape-local coordinates.
// Rect and Radius are set for IndicatorRect, Path and Seed for IndicatorOutline.
type Indicator struct {
	Kind   IndicatorKind
	Rect   vector.Rect
	Radius float32
	Path   vector.Path
	Seed   uint64
}

// IndicatorPath builds the selection outline. Hand-drawn styles follow the
// same seeded outline the shape renders with; other styles get a rounded
// rectangle inset by the stroke width on every side, at least 1 unit wide
// and high.
func IndicatorPath(id string, style Style, size vector.Size) Indicator {
	if style.withDefaults().IsHandDrawn() {
		p, seed := outlinePath(id, style, size)
		return Indicator{Kind: IndicatorOutline, Path: p, Seed: seed}
	}
	sw := ResolveStyle(style, false).StrokeWidth
	return Indicator{
		Kind:   IndicatorRect,
		Rect:   vector.R(sw, sw, max(1, size.W-2*sw), max(1, size.H-2*sw)),
		Radius: 1,
	}
}

// Node converts the indicator to a scene node with the given stroke.
func (ind Indicator) Node(s vector.Stroke) vector.Node {
	var n vector.Node
	if ind.Kind == IndicatorOutline {
		n = vector.NewPath(ind.Path, vector.Fill{}, s)
	} else {
		n = vector.NewRoundedRect(ind.Rect, ind.Radius, vector.Fill{}, s)
	}
	n.SetName("tl-indicator")
	return n
}

// SVG renders the indicator as a single SVG element.
func (ind Indicator) SVG() string {
	if ind.Kind == IndicatorOutline {
		return fmt.Sprintf(`<path d="%s"/>`, ind.Path.SVG())
	}
	f := func(v float32) string { return strconv.FormatFloat(float64(vector.FloatRound(v, 2)), 'f', -1, 32) }
	return fmt.Sprintf(`<rect x="%s" y="%s" rx="%s" ry="%s" width="%s" height="%s"/>`,
		f(ind.Rect.X), f(ind.Rect.Y), f(ind.Radius), f(ind.Radius), f(ind.Rect.W), f(ind.Rect.H))
}
