/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package shape

import "shapekit/internal/vector"

// Util is the behavior a shape type plugs into the registry.
type Util interface {
	Type() Type
	DefaultShape(Overrides) Shape
	Bounds(Shape) vector.Bounds
	Transform(s Shape, target vector.Bounds, info TransformInfo) Shape
	TransformSingle(s Shape, target vector.Bounds, info TransformInfo) Shape
	Indicator(Shape) Indicator
	ShouldSkipRender(prev, next Shape) bool
	Render(s Shape, st RenderState, opts RenderOptions) *vector.Group
	// Invalidate drops memoized data for a shape whose geometry changed.
	Invalidate(id string)
	// Forget releases everything held for a removed shape.
	Forget(id string)

	CanBind() bool
	CanClone() bool
	CanEdit() bool
}

// RectangleUtil is the Util of rectangles.
type RectangleUtil struct {
	cache *BoundsCache
}

var _ Util = (*RectangleUtil)(nil)

func NewRectangleUtil() *RectangleUtil {
	return &RectangleUtil{cache: NewBoundsCache()}
}

// Cache exposes the bounds cache, mainly for tests and stats.
func (u *RectangleUtil) Cache() *BoundsCache { return u.cache }

func (u *RectangleUtil) Type() Type { return TypeRectangle }

func (u *RectangleUtil) DefaultShape(o Overrides) Shape { return New(o) }

func (u *RectangleUtil) Bounds(s Shape) vector.Bounds { return GetBounds(s, u.cache) }

func (u *RectangleUtil) Transform(s Shape, target vector.Bounds, info TransformInfo) Shape {
	return Transform(s, target, info)
}

func (u *RectangleUtil) TransformSingle(s Shape, target vector.Bounds, info TransformInfo) Shape {
	return TransformSingle(s, target, info)
}

func (u *RectangleUtil) Indicator(s Shape) Indicator { return IndicatorPath(s.ID, s.Style, s.Size) }

func (u *RectangleUtil) ShouldSkipRender(prev, next Shape) bool { return ShouldSkipRender(prev, next) }

func (u *RectangleUtil) Render(s Shape, st RenderState, opts RenderOptions) *vector.Group {
	return Render(s, st, opts)
}

func (u *RectangleUtil) Invalidate(id string) { u.cache.Invalidate(id) }
func (u *RectangleUtil) Forget(id string)     { u.cache.Delete(id) }

func (u *RectangleUtil) CanBind() bool  { return true }
func (u *RectangleUtil) CanClone() bool { return true }
func (u *RectangleUtil) CanEdit() bool  { return true }
