/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package registry

import (
	"errors"
	"math"
	"testing"

	"shapekit/internal/shape"
	"shapekit/internal/vector"
)

func ptr[T any](v T) *T { return &v }

func rect(id string, x, y, w, h float32) shape.Shape {
	return shape.New(shape.Overrides{ID: &id, Point: &vector.Pt{X: x, Y: y}, Size: &vector.Size{W: w, H: h}})
}

func box(minX, minY, maxX, maxY float32) vector.Bounds {
	return vector.BoundsFromCorners(vector.Pt{X: minX, Y: minY}, vector.Pt{X: maxX, Y: maxY})
}

func mustAdd(t *testing.T, r *Registry, s shape.Shape) shape.Shape {
	t.Helper()
	out, err := r.Add(s)
	if err != nil {
		t.Fatalf("add %s: %v", s.ID, err)
	}
	return out
}

func TestRegistry_AddGetRemove(t *testing.T) {
	r := New()
	mustAdd(t, r, rect("b", 0, 0, 10, 10))
	a := rect("a", 0, 0, 10, 10)
	a.ChildIndex = 2
	mustAdd(t, r, a)
	mustAdd(t, r, rect("c", 0, 0, 10, 10))

	var order []string
	for _, s := range r.Shapes() {
		order = append(order, s.ID)
	}
	if len(order) != 3 || order[0] != "b" || order[1] != "c" || order[2] != "a" {
		t.Fatalf("unexpected paint order: %v", order)
	}

	if _, err := r.Get("a"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if err := r.Remove("a"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := r.Get("a"); !errors.Is(err, ErrUnknownShape) {
		t.Fatalf("expected ErrUnknownShape, got %v", err)
	}
	if err := r.Remove("a"); !errors.Is(err, ErrUnknownShape) {
		t.Fatalf("expected ErrUnknownShape on second remove, got %v", err)
	}
}

func TestRegistry_UnknownType(t *testing.T) {
	r := New()
	s := rect("x", 0, 0, 1, 1)
	s.Type = "ellipse"
	if _, err := r.Add(s); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestRegistry_AddNormalizes(t *testing.T) {
	r := New()
	s := mustAdd(t, r, shape.Shape{Size: vector.Size{W: 0.2, H: 3.14159}})
	if s.ID == "" || s.Type != shape.TypeRectangle || s.Name != "Rectangle" {
		t.Fatalf("defaults not applied: %+v", s)
	}
	if s.Size.W != 1 || math.Abs(float64(s.Size.H-3.14)) > 1e-5 {
		t.Fatalf("size not normalized: %+v", s.Size)
	}
}

func TestRegistry_BoundsFollowGeometry(t *testing.T) {
	r := New()
	mustAdd(t, r, rect("a", 0, 0, 100, 50))
	b1, _ := r.Bounds("a")
	if err := r.BeginResize("a"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := r.Resize("a", box(10, 10, 30, 40), shape.TransformInfo{}); err != nil {
		t.Fatalf("resize: %v", err)
	}
	b2, _ := r.Bounds("a")
	if b2 == b1 || b2.MinX != 10 || b2.Width != 20 || b2.Height != 30 {
		t.Fatalf("stale bounds after resize: %+v", b2)
	}
}

func TestRegistry_ResizeSequenceAndCancel(t *testing.T) {
	r := New()
	orig := mustAdd(t, r, rect("a", 12.5, -3.25, 80.75, 33))
	if _, err := r.Resize("a", box(0, 0, 1, 1), shape.TransformInfo{}); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if err := r.BeginResize("a"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := r.BeginResize("a"); !errors.Is(err, ErrSessionActive) {
		t.Fatalf("expected ErrSessionActive, got %v", err)
	}
	var last shape.Shape
	for _, b := range []vector.Bounds{box(12.5, -3.25, 120, 60), box(12.5, -3.25, 13, -3), box(-40, -40, 12.5, -3.25)} {
		s, err := r.Resize("a", b, shape.TransformInfo{})
		if err != nil {
			t.Fatalf("resize: %v", err)
		}
		last = s
	}
	if last.Size != (vector.Size{W: 52.5, H: 36.75}) {
		t.Fatalf("last event should win: %+v", last.Size)
	}
	restored, err := r.CancelResize("a")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if restored != orig {
		t.Fatalf("cancel did not restore exactly:\n got %+v\nwant %+v", restored, orig)
	}
	if got, _ := r.Get("a"); got != orig {
		t.Fatalf("stored shape not restored: %+v", got)
	}
	if err := r.EndResize("a"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("cancel should end the session, got %v", err)
	}
}

func TestRegistry_ResizeRejectsDegenerate(t *testing.T) {
	r := New()
	orig := mustAdd(t, r, rect("a", 0, 0, 10, 10))
	_ = r.BeginResize("a")
	nan := float32(math.NaN())
	_, err := r.Resize("a", vector.Bounds{MinX: nan, Width: nan}, shape.TransformInfo{})
	if !errors.Is(err, shape.ErrDegenerateBounds) {
		t.Fatalf("expected ErrDegenerateBounds, got %v", err)
	}
	if got, _ := r.Get("a"); got != orig {
		t.Fatalf("degenerate input must not change the shape")
	}
	if err := r.EndResize("a"); err != nil {
		t.Fatalf("end: %v", err)
	}
}

func TestRelativeBounds(t *testing.T) {
	initial := box(0, 0, 100, 100)
	member := box(10, 20, 30, 60)
	got := RelativeBounds(box(0, 0, 200, 50), initial, member, false, false)
	if got.MinX != 20 || got.MinY != 10 || got.Width != 40 || got.Height != 20 {
		t.Fatalf("unexpected relative box: %+v", got)
	}
	flipped := RelativeBounds(box(0, 0, 100, 100), initial, member, true, false)
	if flipped.MinX != 70 || flipped.Width != 20 {
		t.Fatalf("unexpected flipped box: %+v", flipped)
	}
}

func TestRegistry_GroupTransformAndCancel(t *testing.T) {
	r := New()
	a := mustAdd(t, r, rect("a", 0, 0, 50, 50))
	b := mustAdd(t, r, rect("b", 50, 50, 50, 50))
	rot := rect("c", 25, 25, 20, 10)
	rot.Rotation = 0.25
	c := mustAdd(t, r, rot)

	if err := r.BeginGroup([]string{"a", "b", "c"}); err != nil {
		t.Fatalf("begin group: %v", err)
	}
	if err := r.BeginGroup([]string{"a"}); !errors.Is(err, ErrSessionActive) {
		t.Fatalf("expected ErrSessionActive, got %v", err)
	}
	out, err := r.TransformGroup(box(0, 0, 200, 100), false, false)
	if err != nil {
		t.Fatalf("transform group: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 results, got %d", len(out))
	}
	gb, _ := r.Get("b")
	if gb.Point != (vector.Pt{X: 100, Y: 50}) || gb.Size != (vector.Size{W: 100, H: 50}) {
		t.Fatalf("unexpected member b: %+v %+v", gb.Point, gb.Size)
	}
	gc, _ := r.Get("c")
	if gc.Size != (vector.Size{W: 20, H: 10}) || gc.Rotation != 0.25 {
		t.Fatalf("rotated member should scale uniformly: %+v rot %v", gc.Size, gc.Rotation)
	}

	// same target again changes nothing
	again, _ := r.TransformGroup(box(0, 0, 200, 100), false, false)
	for i := range out {
		if again[i] != out[i] {
			t.Fatalf("group transform not idempotent: %+v vs %+v", again[i], out[i])
		}
	}

	if err := r.CancelGroup(); err != nil {
		t.Fatalf("cancel group: %v", err)
	}
	for _, want := range []shape.Shape{a, b, c} {
		if got, _ := r.Get(want.ID); got != want {
			t.Fatalf("cancel did not restore %s:\n got %+v\nwant %+v", want.ID, got, want)
		}
	}
	if err := r.EndGroup(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestRegistry_GroupFlipMirrorsRotation(t *testing.T) {
	r := New()
	s := rect("a", 0, 0, 40, 20)
	s.Rotation = 0.5
	mustAdd(t, r, s)
	mustAdd(t, r, rect("b", 60, 0, 40, 20))
	if err := r.BeginGroup([]string{"a", "b"}); err != nil {
		t.Fatalf("begin group: %v", err)
	}
	if _, err := r.TransformGroup(box(0, 0, 100, 20), true, false); err != nil {
		t.Fatalf("transform group: %v", err)
	}
	ga, _ := r.Get("a")
	gb, _ := r.Get("b")
	if ga.Rotation != -0.5 {
		t.Fatalf("expected mirrored rotation, got %v", ga.Rotation)
	}
	if gb.Point.X != 0 || ga.Point.X != 60 {
		t.Fatalf("flip should swap member positions: a=%v b=%v", ga.Point.X, gb.Point.X)
	}
	if err := r.EndGroup(); err != nil {
		t.Fatalf("end group: %v", err)
	}
}

func TestRegistry_RenderCache(t *testing.T) {
	r := New()
	mustAdd(t, r, rect("a", 0, 0, 100, 50))
	g1, err := r.Render("a", shape.RenderState{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	_ = r.BeginResize("a")
	_, _ = r.Resize("a", box(40, 40, 140, 90), shape.TransformInfo{})
	_ = r.EndResize("a")
	g2, _ := r.Render("a", shape.RenderState{})
	if g1 != g2 {
		t.Fatalf("a pure move should reuse the drawing")
	}
	if _, err := r.SetText("a", "hi"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	g3, _ := r.Render("a", shape.RenderState{})
	if g3 == g2 {
		t.Fatalf("text change should redraw")
	}
	g4, _ := r.Render("a", shape.RenderState{IsDarkMode: true})
	if g4 == g3 {
		t.Fatalf("state change should redraw")
	}

	page, err := r.RenderPage(shape.RenderState{}, nil)
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	if len(page.Children) != 1 || page.Children[0].Transform().E != 40 {
		t.Fatalf("page should place the shape at its point: %+v", page.Children)
	}
}

func TestRegistry_IndicatorAndCommonBounds(t *testing.T) {
	r := New()
	st := shape.Style{Dash: shape.DashSolid}
	mustAdd(t, r, shape.New(shape.Overrides{ID: ptr("a"), Size: &vector.Size{W: 10, H: 10}, Style: &st}))
	mustAdd(t, r, rect("b", 20, 30, 5, 5))
	ind, err := r.Indicator("a")
	if err != nil || ind.Kind != shape.IndicatorRect || ind.Rect.W != 6 {
		t.Fatalf("unexpected indicator: %+v %v", ind, err)
	}
	b, ok, err := r.CommonBounds()
	if err != nil || !ok {
		t.Fatalf("common bounds: %v", err)
	}
	if b.MinX != 0 || b.MaxX != 25 || b.MaxY != 35 {
		t.Fatalf("unexpected common bounds: %+v", b)
	}
}

func TestRegistry_UndoRedoResize(t *testing.T) {
	r := New()
	orig := mustAdd(t, r, rect("a", 0, 0, 10, 10))
	if err := r.BeginResize("a"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	resized, err := r.Resize("a", box(0, 0, 40, 20), shape.TransformInfo{})
	if err != nil {
		t.Fatalf("resize: %v", err)
	}
	if _, ok := r.Undo(); ok {
		t.Fatalf("undo must be refused while a resize is active")
	}
	if err := r.EndResize("a"); err != nil {
		t.Fatalf("end: %v", err)
	}
	if _, ok := r.Undo(); !ok {
		t.Fatalf("expected an edit to undo")
	}
	if got, _ := r.Get("a"); got != orig {
		t.Fatalf("undo did not restore: %+v", got)
	}
	if b, _ := r.Bounds("a"); b.Width != 10 {
		t.Fatalf("bounds not invalidated on undo: %+v", b)
	}
	if _, ok := r.Redo(); !ok {
		t.Fatalf("expected an edit to redo")
	}
	if got, _ := r.Get("a"); got != resized {
		t.Fatalf("redo did not reapply: %+v", got)
	}
}

func TestRegistry_UndoGroup(t *testing.T) {
	r := New()
	a := mustAdd(t, r, rect("a", 0, 0, 10, 10))
	b := mustAdd(t, r, rect("b", 10, 10, 10, 10))
	if err := r.BeginGroup([]string{"a", "b"}); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := r.TransformGroup(box(0, 0, 40, 40), false, false); err != nil {
		t.Fatalf("transform: %v", err)
	}
	if err := r.EndGroup(); err != nil {
		t.Fatalf("end: %v", err)
	}
	restored, ok := r.Undo()
	if !ok || len(restored) != 2 {
		t.Fatalf("undo group: ok=%v restored=%d", ok, len(restored))
	}
	if got, _ := r.Get("a"); got != a {
		t.Fatalf("a not restored: %+v", got)
	}
	if got, _ := r.Get("b"); got != b {
		t.Fatalf("b not restored: %+v", got)
	}
}

func TestRegistry_TextEditsCoalesce(t *testing.T) {
	r := New()
	mustAdd(t, r, rect("a", 0, 0, 10, 10))
	for _, s := range []string{"h", "hi", "hi!"} {
		if _, err := r.SetText("a", s); err != nil {
			t.Fatalf("set text: %v", err)
		}
	}
	if u, _ := r.History.Len(); u != 1 {
		t.Fatalf("typing should be one undo step, got %d", u)
	}
	r.Undo()
	if got, _ := r.Get("a"); got.Text != "" {
		t.Fatalf("undo should clear the label, got %q", got.Text)
	}
}

func TestRegistry_RemoveForgetsHistory(t *testing.T) {
	r := New()
	mustAdd(t, r, rect("a", 0, 0, 10, 10))
	if _, err := r.SetText("a", "x"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if err := r.Remove("a"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := r.Undo(); ok {
		t.Fatalf("history of a removed shape must be dropped")
	}
	if _, err := r.Get("a"); err == nil {
		t.Fatalf("removed shape came back")
	}
}

func TestRegistry_SetTextRefusedDuringSession(t *testing.T) {
	r := New()
	orig := mustAdd(t, r, rect("a", 0, 0, 10, 10))
	if err := r.BeginResize("a"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := r.Resize("a", box(0, 0, 500, 500), shape.TransformInfo{}); err != nil {
		t.Fatalf("resize: %v", err)
	}
	if _, err := r.SetText("a", "x"); !errors.Is(err, ErrSessionActive) {
		t.Fatalf("expected ErrSessionActive, got %v", err)
	}
	if _, err := r.CancelResize("a"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, ok := r.Undo(); ok {
		t.Fatalf("nothing was committed, undo should be empty")
	}
	if got, _ := r.Get("a"); got != orig {
		t.Fatalf("cancel should leave the original shape: %+v", got)
	}
}

func TestRegistry_RemoveRefusedDuringGroup(t *testing.T) {
	r := New()
	a := mustAdd(t, r, rect("a", 0, 0, 10, 10))
	mustAdd(t, r, rect("b", 10, 10, 10, 10))
	if err := r.BeginGroup([]string{"a", "b"}); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := r.Remove("b"); !errors.Is(err, ErrSessionActive) {
		t.Fatalf("expected ErrSessionActive, got %v", err)
	}
	out, err := r.TransformGroup(box(0, 0, 300, 100), false, false)
	if err != nil || len(out) != 2 {
		t.Fatalf("transform: %v (%d shapes)", err, len(out))
	}
	if err := r.CancelGroup(); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got, _ := r.Get("a"); got != a {
		t.Fatalf("a not restored: %+v", got)
	}
	if err := r.Remove("b"); err != nil {
		t.Fatalf("remove after the session: %v", err)
	}
}

func TestRegistry_GroupMissingMemberLeavesOthersUntouched(t *testing.T) {
	r := New()
	a := mustAdd(t, r, rect("a", 0, 0, 10, 10))
	mustAdd(t, r, rect("b", 10, 10, 10, 10))
	if err := r.BeginGroup([]string{"a", "b"}); err != nil {
		t.Fatalf("begin: %v", err)
	}
	// the store can lose a member behind the session's back
	delete(r.shapes, "b")
	if _, err := r.TransformGroup(box(0, 0, 300, 100), false, false); !errors.Is(err, ErrUnknownShape) {
		t.Fatalf("expected ErrUnknownShape, got %v", err)
	}
	if got, _ := r.Get("a"); got != a {
		t.Fatalf("a changed by a failed group transform: %+v", got)
	}
}

func TestRegistry_SetRenderOptionsDropsDrawings(t *testing.T) {
	r := New()
	mustAdd(t, r, rect("a", 0, 0, 100, 50))
	st := shape.RenderState{IsGhost: true}
	g1, err := r.Render("a", st)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if g2, _ := r.Render("a", st); g2 != g1 {
		t.Fatalf("unchanged shape should reuse the drawing")
	}
	r.SetRenderOptions(shape.RenderOptions{GhostOpacity: 0.6})
	g3, _ := r.Render("a", st)
	if g3 == g1 {
		t.Fatalf("new options should redraw")
	}
	if r.RenderOptions().GhostOpacity != 0.6 {
		t.Fatalf("options not stored: %+v", r.RenderOptions())
	}
}
