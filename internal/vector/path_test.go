/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"strings"
	"testing"
)

func TestPathNode_BoundsAndHit(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(0, 10)
	p.Close()

	n := NewPath(p, Fill{Enabled: true, Color: White}, Stroke{Enabled: true, Width: 1})

	// Bounds should cover the triangle extents
	b := n.Bounds()
	if b.X != 0 || b.Y != 0 || b.W != 10 || b.H != 10 {
		t.Fatalf("unexpected bounds: %+v", b)
	}

	// Hit uses bbox for now
	if !n.Hit(Pt{1, 1}) {
		t.Fatalf("expected hit inside bbox")
	}
	if n.Hit(Pt{20, 20}) {
		t.Fatalf("did not expect hit far away")
	}

	// Apply transform and check again
	n.SetTransform(Translate(5, 5))
	if !n.Hit(Pt{6, 6}) {
		t.Fatalf("expected hit after translation")
	}
	bb := n.Bounds()
	if bb.X != 5 || bb.Y != 5 || bb.W != 10 || bb.H != 10 {
		t.Fatalf("unexpected transformed bounds: %+v", bb)
	}
}

func TestPath_QuadAndCubic_Bounds(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.QuadTo(10, 10, 20, 0)
	p.CubicTo(30, -10, 40, 10, 50, 0)
	p.Close()

	b := p.Bounds()
	// With our approximation including control points, min/max should reflect extremes
	if b.X != 0 || b.Y != -10 || b.W != 50 || b.H != 20 {
		t.Fatalf("unexpected bounds: %+v", b)
	}
}

func TestPath_SVG(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.LineTo(10.004, 0)
	p.QuadTo(1, 2, 3.5, 4)
	p.Close()
	if got, want := p.SVG(), "M0,0 L10,0 Q1,2 3.5,4 Z"; got != want {
		t.Fatalf("SVG() = %q, want %q", got, want)
	}
}

func TestSmoothPath(t *testing.T) {
	pts := []Pt{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	p := SmoothPath(pts, true)
	d := p.SVG()
	if !strings.HasPrefix(d, "M0,0 Q") || !strings.HasSuffix(d, "Z") {
		t.Fatalf("unexpected smooth path: %s", d)
	}
	// one move, len-2 quads, one close
	if len(p.Cmds) != 1+len(pts)-2+1 {
		t.Fatalf("unexpected command count %d", len(p.Cmds))
	}
	if short := SmoothPath(pts[:3], true); !short.Empty() {
		t.Fatalf("expected empty path for fewer than 4 points")
	}
}

func TestPath_Transform(t *testing.T) {
	p := PolygonPath([]Pt{{0, 0}, {10, 0}, {10, 5}}, true)
	moved := p.Transform(Translate(3, 4))
	b := moved.Bounds()
	if b.X != 3 || b.Y != 4 || b.W != 10 || b.H != 5 {
		t.Fatalf("unexpected transformed bounds: %+v", b)
	}
	if moved.Cmds[len(moved.Cmds)-1].Op != Close {
		t.Fatalf("close command lost")
	}
}
