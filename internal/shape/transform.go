/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package shape

import (
	"math"

	"shapekit/internal/vector"
)

// TransformInfo describes a resize gesture. ScaleX/ScaleY are the group's
// scale factors relative to the gesture start (negative when the axis is
// flipped). Origin is the transform origin in normalized box coordinates,
// (0,0) top-left to (1,1) bottom-right. Initial is the shape as it was when
// the gesture started; it may be nil for plain box fitting.
type TransformInfo struct {
	ScaleX, ScaleY float32
	FlipX, FlipY   bool
	Origin         vector.Pt
	Initial        *Shape
}

func (info TransformInfo) flippedX() bool { return info.FlipX || info.ScaleX < 0 }
func (info TransformInfo) flippedY() bool { return info.FlipY || info.ScaleY < 0 }

// Transform fits s into target as one member of a group transform. The
// result depends only on target and info, so repeating a call is a no-op.
//
// Rotated or aspect-locked shapes keep their proportions: the gesture's
// initial size is scaled by the smaller absolute scale factor and the box is
// placed inside target according to Origin. Flipping exactly one axis
// mirrors the rotation.
func Transform(s Shape, target vector.Bounds, info TransformInfo) Shape {
	if in := info.Initial; in != nil && (in.Rotation != 0 || in.IsAspectRatioLocked) {
		return transformUniform(s, target, info)
	}
	return fitBox(s, target)
}

// TransformSingle resizes s to the box produced by dragging one of its
// handles. Flips only change which corner the box is anchored at, which
// target already encodes. ID and Style are kept, so the hand-drawn outline
// (seeded by ID) deforms with the box instead of being regenerated.
func TransformSingle(s Shape, target vector.Bounds, info TransformInfo) Shape {
	return fitBox(s, target)
}

func fitBox(s Shape, target vector.Bounds) Shape {
	s.Point = roundPt(clampPoint(vector.Pt{X: target.MinX, Y: target.MinY}))
	s.Size = clampSize(vector.Size{W: round2(target.Width), H: round2(target.Height)})
	return s
}

func transformUniform(s Shape, target vector.Bounds, info TransformInfo) Shape {
	in := info.Initial
	k := float32(math.Min(math.Abs(float64(info.ScaleX)), math.Abs(float64(info.ScaleY))))
	if !vector.IsFinite(k) {
		k = 1
	}
	size := clampSize(vector.Size{W: round2(in.Size.W * k), H: round2(in.Size.H * k)})

	ox, oy := info.Origin.X, info.Origin.Y
	if info.flippedX() {
		ox = 1 - ox
	}
	if info.flippedY() {
		oy = 1 - oy
	}
	minX, minY := clampCoord(target.MinX), clampCoord(target.MinY)
	w, h := target.Width, target.Height
	if !vector.IsFinite(w) {
		w = size.W
	}
	if !vector.IsFinite(h) {
		h = size.H
	}
	s.Size = size
	s.Point = roundPt(clampPoint(vector.Pt{
		X: minX + (w-size.W)*ox,
		Y: minY + (h-size.H)*oy,
	}))
	s.Rotation = in.Rotation
	if info.flippedX() != info.flippedY() {
		s.Rotation = -in.Rotation
	}
	return s
}
