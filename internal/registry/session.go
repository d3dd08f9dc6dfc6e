/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package registry

import (
	"fmt"
	"log/slog"

	"shapekit/internal/shape"
	"shapekit/internal/vector"
)

// BeginResize starts a handle drag on one shape and remembers its geometry.
func (r *Registry) BeginResize(id string) error {
	s, u, err := r.lookup(id)
	if err != nil {
		return err
	}
	if _, ok := r.resizes[id]; ok {
		return fmt.Errorf("resize %q: %w", id, ErrSessionActive)
	}
	r.resizes[id] = resizeSession{initial: s, bounds: u.Bounds(s)}
	r.log.Debug("resize begin", slog.String("id", id))
	return nil
}

// Resize applies one drag event. Events must be applied in the order they
// arrive; each result replaces the shape before the next call. A target box
// with NaN or infinite values is rejected and leaves the shape unchanged.
func (r *Registry) Resize(id string, target vector.Bounds, info shape.TransformInfo) (shape.Shape, error) {
	s, u, err := r.lookup(id)
	if err != nil {
		return shape.Shape{}, err
	}
	sess, ok := r.resizes[id]
	if !ok {
		return shape.Shape{}, fmt.Errorf("resize %q: %w", id, ErrNoSession)
	}
	if err := shape.CheckBounds(target); err != nil {
		return shape.Shape{}, fmt.Errorf("resize %q: %w", id, err)
	}
	if info.Initial == nil {
		info.Initial = &sess.initial
	}
	next := u.TransformSingle(s, target, info)
	r.replace(next, u)
	return next, nil
}

// EndResize commits the drag.
func (r *Registry) EndResize(id string) error {
	sess, ok := r.resizes[id]
	if !ok {
		return fmt.Errorf("resize %q: %w", id, ErrNoSession)
	}
	delete(r.resizes, id)
	if s, ok := r.shapes[id]; ok {
		r.commit("resize", []shape.Shape{sess.initial}, []shape.Shape{s})
	}
	r.log.Debug("resize end", slog.String("id", id))
	return nil
}

// CancelResize aborts the drag by transforming the shape back into the box
// it had when the drag began.
func (r *Registry) CancelResize(id string) (shape.Shape, error) {
	s, u, err := r.lookup(id)
	if err != nil {
		return shape.Shape{}, err
	}
	sess, ok := r.resizes[id]
	if !ok {
		return shape.Shape{}, fmt.Errorf("resize %q: %w", id, ErrNoSession)
	}
	delete(r.resizes, id)
	restored := u.TransformSingle(s, sess.bounds, shape.TransformInfo{ScaleX: 1, ScaleY: 1, Initial: &sess.initial})
	r.replace(restored, u)
	r.log.Debug("resize cancel", slog.String("id", id))
	return restored, nil
}

type groupMember struct {
	initial shape.Shape
	bounds  vector.Bounds
	origin  vector.Pt
}

type groupSession struct {
	ids     []string
	members map[string]groupMember
	common  vector.Bounds
}

// BeginGroup starts a transform of several shapes at once.
func (r *Registry) BeginGroup(ids []string) error {
	if r.group != nil {
		return fmt.Errorf("group transform: %w", ErrSessionActive)
	}
	if len(ids) == 0 {
		return fmt.Errorf("group transform: %w: no shapes", ErrUnknownShape)
	}
	common, _, err := r.CommonBounds(ids...)
	if err != nil {
		return err
	}
	g := &groupSession{ids: append([]string(nil), ids...), members: map[string]groupMember{}, common: common}
	for _, id := range ids {
		s, u, err := r.lookup(id)
		if err != nil {
			return err
		}
		b := u.Bounds(s)
		c := b.Center()
		g.members[id] = groupMember{
			initial: s,
			bounds:  b,
			origin:  vector.Pt{X: ratio(c.X-common.MinX, common.Width), Y: ratio(c.Y-common.MinY, common.Height)},
		}
	}
	r.group = g
	r.log.Debug("group begin", slog.Int("shapes", len(ids)))
	return nil
}

func ratio(a, b float32) float32 {
	if b == 0 {
		return 0
	}
	return a / b
}

// RelativeBounds places a member box inside target the way it sat inside
// initial, the box around the whole group at the start. Flipped axes mirror
// the member's position.
func RelativeBounds(target, initial, member vector.Bounds, flipX, flipY bool) vector.Bounds {
	nx := ratio(member.MinX-initial.MinX, initial.Width)
	if flipX {
		nx = ratio(initial.MaxX-member.MaxX, initial.Width)
	}
	ny := ratio(member.MinY-initial.MinY, initial.Height)
	if flipY {
		ny = ratio(initial.MaxY-member.MaxY, initial.Height)
	}
	nw := ratio(member.Width, initial.Width)
	nh := ratio(member.Height, initial.Height)

	minX := target.MinX + target.Width*nx
	minY := target.MinY + target.Height*ny
	w := target.Width * nw
	h := target.Height * nh
	return vector.Bounds{MinX: minX, MinY: minY, MaxX: minX + w, MaxY: minY + h, Width: w, Height: h}
}

// TransformGroup fits every member of the group session into target.
// Results depend only on target and the session start, so repeated or
// out-of-order moves of the same gesture settle on the same geometry.
func (r *Registry) TransformGroup(target vector.Bounds, flipX, flipY bool) ([]shape.Shape, error) {
	g := r.group
	if g == nil {
		return nil, fmt.Errorf("group transform: %w", ErrNoSession)
	}
	if err := shape.CheckBounds(target); err != nil {
		return nil, fmt.Errorf("group transform: %w", err)
	}
	sx := ratio(target.Width, g.common.Width)
	sy := ratio(target.Height, g.common.Height)
	if flipX {
		sx = -sx
	}
	if flipY {
		sy = -sy
	}
	out := make([]shape.Shape, 0, len(g.ids))
	utils := make([]shape.Util, 0, len(g.ids))
	for _, id := range g.ids {
		s, u, err := r.lookup(id)
		if err != nil {
			return nil, err
		}
		m := g.members[id]
		info := shape.TransformInfo{ScaleX: sx, ScaleY: sy, FlipX: flipX, FlipY: flipY, Origin: m.origin, Initial: &m.initial}
		out = append(out, u.Transform(s, RelativeBounds(target, g.common, m.bounds, flipX, flipY), info))
		utils = append(utils, u)
	}
	for i, next := range out {
		r.replace(next, utils[i])
	}
	return out, nil
}

// CancelGroup restores every member by transforming it back into its box
// at the start of the session.
func (r *Registry) CancelGroup() error {
	g := r.group
	if g == nil {
		return fmt.Errorf("group transform: %w", ErrNoSession)
	}
	r.group = nil
	for _, id := range g.ids {
		s, u, err := r.lookup(id)
		if err != nil {
			continue
		}
		m := g.members[id]
		info := shape.TransformInfo{ScaleX: 1, ScaleY: 1, Origin: m.origin, Initial: &m.initial}
		restored := u.Transform(s, m.bounds, info)
		r.replace(restored, u)
	}
	r.log.Debug("group cancel", slog.Int("shapes", len(g.ids)))
	return nil
}

// EndGroup commits the group transform.
func (r *Registry) EndGroup() error {
	g := r.group
	if g == nil {
		return fmt.Errorf("group transform: %w", ErrNoSession)
	}
	r.group = nil
	var before, after []shape.Shape
	for _, id := range g.ids {
		if s, ok := r.shapes[id]; ok {
			before = append(before, g.members[id].initial)
			after = append(after, s)
		}
	}
	r.commit("group", before, after)
	r.log.Debug("group end", slog.Int("shapes", len(g.ids)))
	return nil
}
