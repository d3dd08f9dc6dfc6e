/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package shape implements the rectangle shape type: its data model, bounds,
// resize transforms, selection indicator and render output.
package shape

import (
	"github.com/google/uuid"

	"shapekit/internal/vector"
)

// Type is the tag the registry dispatches on.
type Type string

const TypeRectangle Type = "rectangle"

const (
	DefaultName     = "Rectangle"
	DefaultParentID = "page"
	// MinSize is the smallest width or height a shape may have.
	MinSize float32 = 1
)

// Shape is the geometry record of one rectangle. It is a value: every
// operation that changes geometry returns a new Shape.
type Shape struct {
	ID         string
	Type       Type
	Name       string
	ParentID   string
	ChildIndex float32
	Point      vector.Pt // top-left, parent space
	Size       vector.Size
	Rotation   float32 // radians
	Style      Style
	Text       string
	// IsAspectRatioLocked makes group transforms scale uniformly.
	IsAspectRatioLocked bool
}

// Overrides lists the fields a caller may set when creating a shape; nil
// fields take their defaults. Style replaces the default style as a whole.
type Overrides struct {
	ID                  *string
	Name                *string
	ParentID            *string
	ChildIndex          *float32
	Point               *vector.Pt
	Size                *vector.Size
	Rotation            *float32
	Style               *Style
	Text                *string
	IsAspectRatioLocked *bool
}

// New creates a rectangle from defaults and the given overrides. A missing
// ID gets a random UUID. Sizes are clamped to MinSize.
func New(o Overrides) Shape {
	s := Shape{
		Type:       TypeRectangle,
		Name:       DefaultName,
		ParentID:   DefaultParentID,
		ChildIndex: 1,
		Size:       vector.Size{W: 1, H: 1},
		Style:      DefaultStyle,
	}
	if o.ID != nil && *o.ID != "" {
		s.ID = *o.ID
	} else {
		s.ID = uuid.NewString()
	}
	if o.Name != nil {
		s.Name = *o.Name
	}
	if o.ParentID != nil {
		s.ParentID = *o.ParentID
	}
	if o.ChildIndex != nil {
		s.ChildIndex = *o.ChildIndex
	}
	if o.Point != nil {
		s.Point = clampPoint(*o.Point)
	}
	if o.Size != nil {
		s.Size = clampSize(*o.Size)
	}
	if o.Rotation != nil && vector.IsFinite(*o.Rotation) {
		s.Rotation = *o.Rotation
	}
	if o.Style != nil {
		s.Style = o.Style.withDefaults()
	}
	if o.Text != nil {
		s.Text = *o.Text
	}
	if o.IsAspectRatioLocked != nil {
		s.IsAspectRatioLocked = *o.IsAspectRatioLocked
	}
	return s
}

// Normalize applies the geometry invariants to a shape read from outside:
// finite coordinates, sizes at least MinSize, two-decimal precision, and
// defaults for empty style fields.
func Normalize(s Shape) Shape {
	if s.Type == "" {
		s.Type = TypeRectangle
	}
	s.Point = roundPt(clampPoint(s.Point))
	s.Size = clampSize(vector.Size{W: round2(s.Size.W), H: round2(s.Size.H)})
	if !vector.IsFinite(s.Rotation) {
		s.Rotation = 0
	}
	s.Style = s.Style.withDefaults()
	return s
}

// Rect is the shape's untransformed box in parent space.
func (s Shape) Rect() vector.Rect {
	return vector.R(s.Point.X, s.Point.Y, s.Size.W, s.Size.H)
}

// Center is the center of the untransformed box in parent space.
func (s Shape) Center() vector.Pt {
	return vector.Pt{X: s.Point.X + s.Size.W/2, Y: s.Point.Y + s.Size.H/2}
}

// Placement maps shape-local coordinates (origin at the top-left corner) to
// parent space: rotation about the center, then translation to Point.
func Placement(s Shape) vector.Affine2D {
	c := vector.Pt{X: s.Size.W / 2, Y: s.Size.H / 2}
	return vector.Translate(s.Point.X, s.Point.Y).Mul(vector.RotateAround(s.Rotation, c))
}

func clampDim(v float32) float32 {
	if !vector.IsFinite(v) || v < MinSize {
		return MinSize
	}
	return v
}

func clampSize(sz vector.Size) vector.Size {
	return vector.Size{W: clampDim(sz.W), H: clampDim(sz.H)}
}

func clampCoord(v float32) float32 {
	if !vector.IsFinite(v) {
		return 0
	}
	return v
}

func clampPoint(p vector.Pt) vector.Pt {
	return vector.Pt{X: clampCoord(p.X), Y: clampCoord(p.Y)}
}

// round2 rounds to two decimals; values too large to scale are kept as is.
func round2(v float32) float32 {
	r := vector.FloatRound(v, 2)
	if !vector.IsFinite(r) {
		return v
	}
	return r
}

func roundPt(p vector.Pt) vector.Pt {
	return vector.Pt{X: round2(p.X), Y: round2(p.Y)}
}

// AsOverrides returns overrides holding the non-zero fields of s, so that
// New(s.AsOverrides()) fills only what s leaves empty.
func (s Shape) AsOverrides() Overrides {
	var o Overrides
	if s.ID != "" {
		o.ID = &s.ID
	}
	if s.Name != "" {
		o.Name = &s.Name
	}
	if s.ParentID != "" {
		o.ParentID = &s.ParentID
	}
	if s.ChildIndex != 0 {
		o.ChildIndex = &s.ChildIndex
	}
	if s.Point != (vector.Pt{}) {
		o.Point = &s.Point
	}
	if s.Size != (vector.Size{}) {
		o.Size = &s.Size
	}
	if s.Rotation != 0 {
		o.Rotation = &s.Rotation
	}
	if s.Style != (Style{}) {
		o.Style = &s.Style
	}
	if s.Text != "" {
		o.Text = &s.Text
	}
	if s.IsAspectRatioLocked {
		o.IsAspectRatioLocked = &s.IsAspectRatioLocked
	}
	return o
}
