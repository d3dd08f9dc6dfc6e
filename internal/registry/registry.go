/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package registry keeps the shapes of one page, dispatches every operation
// to the shape type's Util and runs resize sessions with cancel-by-restore.
// A Registry is not safe for concurrent use; callers drive it from one
// event loop.
package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	applog "shapekit/internal/log"
	"shapekit/internal/shape"
	"shapekit/internal/undo"
	"shapekit/internal/vector"
)

var (
	ErrUnknownShape  = errors.New("unknown shape")
	ErrUnknownType   = errors.New("unknown shape type")
	ErrNoSession     = errors.New("no active session")
	ErrSessionActive = errors.New("session already active")
)

type rendered struct {
	shape shape.Shape
	state shape.RenderState
	group *vector.Group
}

type resizeSession struct {
	initial shape.Shape
	bounds  vector.Bounds
}

type Registry struct {
	utils   map[shape.Type]shape.Util
	shapes  map[string]shape.Shape
	renders map[string]rendered
	resizes map[string]resizeSession
	group   *groupSession
	log     *slog.Logger

	opts    shape.RenderOptions
	// History receives every committed resize, group transform and text
	// edit.
	History *undo.History
}

// textCoalesce merges label edits of one shape typed in quick succession.
const textCoalesce = time.Second

// New returns an empty registry with the rectangle type registered.
func New() *Registry {
	r := &Registry{
		utils:   map[shape.Type]shape.Util{},
		shapes:  map[string]shape.Shape{},
		renders: map[string]rendered{},
		resizes: map[string]resizeSession{},
		log:     applog.WithComponent("registry"),
		History: undo.NewHistory(undo.Config{MinInterval: textCoalesce}),
	}
	r.Register(shape.NewRectangleUtil())
	return r
}

// Register installs u for its type, replacing any previous Util.
func (r *Registry) Register(u shape.Util) {
	r.utils[u.Type()] = u
	r.log.Debug("register", slog.String("type", string(u.Type())))
}

// Util returns the Util registered for t.
func (r *Registry) Util(t shape.Type) (shape.Util, error) {
	u, ok := r.utils[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	return u, nil
}

func (r *Registry) lookup(id string) (shape.Shape, shape.Util, error) {
	s, ok := r.shapes[id]
	if !ok {
		return shape.Shape{}, nil, fmt.Errorf("%w: %q", ErrUnknownShape, id)
	}
	u, err := r.Util(s.Type)
	if err != nil {
		return shape.Shape{}, nil, err
	}
	return s, u, nil
}

// Add stores s after normalizing its geometry. A shape without an id is
// completed from the type's defaults. Adding an existing id replaces that
// shape.
func (r *Registry) Add(s shape.Shape) (shape.Shape, error) {
	s = shape.Normalize(s)
	u, err := r.Util(s.Type)
	if err != nil {
		return shape.Shape{}, err
	}
	if s.ID == "" {
		s = u.DefaultShape(s.AsOverrides())
	}
	r.replace(s, u)
	r.log.Debug("add", slog.String("id", s.ID), slog.String("type", string(s.Type)))
	return s, nil
}

// replace stores new geometry and invalidates memoized bounds for it.
func (r *Registry) replace(s shape.Shape, u shape.Util) {
	r.shapes[s.ID] = s
	u.Invalidate(s.ID)
}

// Get returns the shape with id.
func (r *Registry) Get(id string) (shape.Shape, error) {
	s, _, err := r.lookup(id)
	return s, err
}

// Remove deletes a shape and everything held for it. Shapes cannot be
// removed while a resize or group session is active.
func (r *Registry) Remove(id string) error {
	_, u, err := r.lookup(id)
	if err != nil {
		return err
	}
	if r.sessionActive() {
		return fmt.Errorf("remove %q: %w", id, ErrSessionActive)
	}
	delete(r.shapes, id)
	delete(r.renders, id)
	delete(r.resizes, id)
	u.Forget(id)
	r.History.Forget(id)
	r.log.Debug("remove", slog.String("id", id))
	return nil
}

// Len is the number of shapes.
func (r *Registry) Len() int { return len(r.shapes) }

// Shapes returns all shapes in paint order: by ChildIndex, then ID.
func (r *Registry) Shapes() []shape.Shape {
	out := make([]shape.Shape, 0, len(r.shapes))
	for _, s := range r.shapes {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ChildIndex != out[j].ChildIndex {
			return out[i].ChildIndex < out[j].ChildIndex
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Bounds returns the cached bounds of a shape.
func (r *Registry) Bounds(id string) (vector.Bounds, error) {
	s, u, err := r.lookup(id)
	if err != nil {
		return vector.Bounds{}, err
	}
	return u.Bounds(s), nil
}

// CommonBounds returns the box around the given shapes, or all shapes when
// ids is empty. ok is false when there is nothing to enclose.
func (r *Registry) CommonBounds(ids ...string) (b vector.Bounds, ok bool, err error) {
	if len(ids) == 0 {
		for _, s := range r.Shapes() {
			ids = append(ids, s.ID)
		}
	}
	for i, id := range ids {
		sb, err := r.Bounds(id)
		if err != nil {
			return vector.Bounds{}, false, err
		}
		if i == 0 {
			b = sb
		} else {
			b = b.Expand(sb)
		}
	}
	return b, len(ids) > 0, nil
}

// SetText replaces the label of a shape. Geometry is untouched. Labels
// cannot change while a resize or group session is active.
func (r *Registry) SetText(id, text string) (shape.Shape, error) {
	s, _, err := r.lookup(id)
	if err != nil {
		return shape.Shape{}, err
	}
	if r.sessionActive() {
		return shape.Shape{}, fmt.Errorf("set text %q: %w", id, ErrSessionActive)
	}
	before := s
	s.Text = text
	r.shapes[id] = s
	r.History.Push(undo.Edit{Label: "text", Before: []shape.Shape{before}, After: []shape.Shape{s}, TS: time.Now(), Merge: true})
	return s, nil
}

func (r *Registry) commit(label string, before, after []shape.Shape) {
	r.History.Push(undo.Edit{Label: label, Before: before, After: after, TS: time.Now()})
}

// Undo reverts the latest committed edit and returns the restored shapes.
// It reports false when there is nothing to undo or a session is active.
func (r *Registry) Undo() ([]shape.Shape, bool) {
	if r.sessionActive() {
		return nil, false
	}
	e, ok := r.History.Undo()
	if !ok {
		return nil, false
	}
	r.restore(e.Before)
	r.log.Debug("undo", slog.String("edit", e.Label), slog.Any("ids", e.IDs()))
	return e.Before, true
}

// Redo reapplies the latest undone edit.
func (r *Registry) Redo() ([]shape.Shape, bool) {
	if r.sessionActive() {
		return nil, false
	}
	e, ok := r.History.Redo()
	if !ok {
		return nil, false
	}
	r.restore(e.After)
	r.log.Debug("redo", slog.String("edit", e.Label), slog.Any("ids", e.IDs()))
	return e.After, true
}

func (r *Registry) restore(shapes []shape.Shape) {
	for _, s := range shapes {
		if u, ok := r.utils[s.Type]; ok {
			r.replace(s, u)
		}
	}
}

func (r *Registry) sessionActive() bool { return r.group != nil || len(r.resizes) > 0 }

// RenderOptions returns the options passed to every Util.Render call.
func (r *Registry) RenderOptions() shape.RenderOptions { return r.opts }

// SetRenderOptions replaces the render options and drops every memoized
// drawing.
func (r *Registry) SetRenderOptions(o shape.RenderOptions) {
	r.opts = o
	clear(r.renders)
}

// Indicator returns the selection outline of a shape in local coordinates.
func (r *Registry) Indicator(id string) (shape.Indicator, error) {
	s, u, err := r.lookup(id)
	if err != nil {
		return shape.Indicator{}, err
	}
	return u.Indicator(s), nil
}

// Render draws one shape in shape-local coordinates. The previous drawing
// is reused while the shape's Util reports nothing visible changed.
func (r *Registry) Render(id string, st shape.RenderState) (*vector.Group, error) {
	s, u, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	if prev, ok := r.renders[id]; ok && prev.state == st && u.ShouldSkipRender(prev.shape, s) {
		return prev.group, nil
	}
	g := u.Render(s, st, r.opts)
	r.renders[id] = rendered{shape: s, state: st, group: g}
	return g, nil
}

// RenderPage draws every shape placed in page space, in paint order.
// states may hold per-shape flags; missing entries use base.
func (r *Registry) RenderPage(base shape.RenderState, states map[string]shape.RenderState) (*vector.Group, error) {
	page := vector.NewGroup()
	page.SetName("tl-page")
	for _, s := range r.Shapes() {
		st, ok := states[s.ID]
		if !ok {
			st = base
		}
		g, err := r.Render(s.ID, st)
		if err != nil {
			return nil, err
		}
		page.Add(shape.Place(g, s))
	}
	return page, nil
}
