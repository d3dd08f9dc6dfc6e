/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shapekit/internal/scene"
	"shapekit/internal/vector"
)

const twoRects = `{
  "version": 1,
  "name": "pair",
  "shapes": [
    {"id": "r1", "type": "rectangle", "point": [10, 20], "size": [100, 50], "childIndex": 1,
     "style": {"color": "blue", "size": "medium", "dash": "dashed", "isFilled": true}, "text": "hello"},
    {"id": "r2", "type": "rectangle", "point": [110, 70], "size": [100, 50], "childIndex": 2}
  ]
}`

// setup writes the sample scene and isolates config from the user's files.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SHAPEKIT_CONFIG", filepath.Join(dir, "config.yaml"))
	path := filepath.Join(dir, "pair.json")
	if err := os.WriteFile(path, []byte(twoRects), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func decodeShapes(t *testing.T, out string) map[string]scene.ShapeJSON {
	t.Helper()
	doc, err := scene.Decode([]byte(out))
	if err != nil {
		t.Fatalf("output is not a scene: %v\n%s", err, out)
	}
	m := map[string]scene.ShapeJSON{}
	for _, s := range doc.Shapes {
		m[s.ID] = s
	}
	return m
}

func TestVersionCmd(t *testing.T) {
	setup(t)
	out, err := run(t, "version")
	if err != nil || strings.TrimSpace(out) == "" {
		t.Fatalf("version: %q, %v", out, err)
	}
}

func TestRenderSVGToStdout(t *testing.T) {
	path := setup(t)
	out, err := run(t, "render", path, "--format", "svg", "--selected", "r1")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "<title>pair</title>") {
		t.Fatalf("unexpected svg:\n%s", out)
	}
}

func TestRenderPNGFile(t *testing.T) {
	path := setup(t)
	png := filepath.Join(filepath.Dir(path), "out", "pair.png")
	if _, err := run(t, "render", path, "-o", png, "--scale", "2", "--dark"); err != nil {
		t.Fatalf("render: %v", err)
	}
	st, err := os.Stat(png)
	if err != nil || st.Size() == 0 {
		t.Fatalf("png not written: %v", err)
	}
}

func TestRenderPreset(t *testing.T) {
	path := setup(t)
	outDir := filepath.Join(filepath.Dir(path), "web")
	out, err := run(t, "render", path, "--preset", "web", "--out-dir", outDir)
	if err != nil {
		t.Fatalf("render preset: %v", err)
	}
	for _, f := range []string{filepath.Join(outDir, "png", "pair.png"), filepath.Join(outDir, "svg", "pair.svg")} {
		if !strings.Contains(out, f) {
			t.Fatalf("output does not list %s:\n%s", f, out)
		}
		if _, err := os.Stat(f); err != nil {
			t.Fatalf("missing %s: %v", f, err)
		}
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	path := setup(t)
	if _, err := run(t, "render", path, "--format", "gif"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestResizeCmd(t *testing.T) {
	path := setup(t)
	out, err := run(t, "resize", path, "r1", "0", "0", "40", "30")
	if err != nil {
		t.Fatalf("resize: %v", err)
	}
	r1 := decodeShapes(t, out)["r1"]
	if *r1.Point != [2]float32{0, 0} || *r1.Size != [2]float32{40, 30} {
		t.Fatalf("r1 = %+v %+v", *r1.Point, *r1.Size)
	}
}

func TestResizeCmd_WritesFile(t *testing.T) {
	path := setup(t)
	if _, err := run(t, "resize", path, "r2", "0", "0", "0.5", "0.5", "-o", path); err != nil {
		t.Fatalf("resize: %v", err)
	}
	doc, err := scene.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	for _, s := range doc.ToShapes() {
		if s.ID == "r2" && (s.Size != vector.Size{W: 1, H: 1}) {
			t.Fatalf("r2 should clamp to 1x1, got %+v", s.Size)
		}
	}
}

func TestResizeCmd_Errors(t *testing.T) {
	path := setup(t)
	if _, err := run(t, "resize", path, "nope", "0", "0", "1", "1"); err == nil {
		t.Fatalf("expected unknown shape error")
	}
	if _, err := run(t, "resize", path, "r1", "0", "0", "x", "1"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestGroupCmd(t *testing.T) {
	path := setup(t)
	out, err := run(t, "group", path, "0", "0", "100", "50")
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	shapes := decodeShapes(t, out)
	if r1 := shapes["r1"]; *r1.Point != [2]float32{0, 0} || *r1.Size != [2]float32{50, 25} {
		t.Fatalf("r1 = %+v %+v", *r1.Point, *r1.Size)
	}
	if r2 := shapes["r2"]; *r2.Point != [2]float32{50, 25} || *r2.Size != [2]float32{50, 25} {
		t.Fatalf("r2 = %+v %+v", *r2.Point, *r2.Size)
	}
}

func TestIndicatorCmd(t *testing.T) {
	path := setup(t)
	out, err := run(t, "indicator", path, "r1")
	if err != nil {
		t.Fatalf("indicator: %v", err)
	}
	if !strings.HasPrefix(out, "<rect") {
		t.Fatalf("dashed shape should use a rect indicator: %q", out)
	}
	out, err = run(t, "indicator", path, "r2")
	if err != nil {
		t.Fatalf("indicator: %v", err)
	}
	if !strings.HasPrefix(out, "<path") {
		t.Fatalf("draw-style shape should use a path indicator: %q", out)
	}
}

func TestBoundsCmd(t *testing.T) {
	path := setup(t)
	out, err := run(t, "bounds", path)
	if err != nil {
		t.Fatalf("bounds: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[1], "r1") || !strings.HasPrefix(lines[2], "r2") {
		t.Fatalf("unexpected bounds table:\n%s", out)
	}
	if !strings.Contains(lines[1], "100") || !strings.Contains(lines[1], "50") {
		t.Fatalf("r1 row missing size: %q", lines[1])
	}
}

func TestConfigInitAndShow(t *testing.T) {
	setup(t)
	if _, err := run(t, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := run(t, "config", "init"); err == nil {
		t.Fatalf("second init without --force should fail")
	}
	t.Setenv("SHAPEKIT_RENDER_SCALE", "3")
	out, err := run(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "scale: 3") || !strings.Contains(out, "render.scale overridden by SHAPEKIT_RENDER_SCALE") {
		t.Fatalf("unexpected config output:\n%s", out)
	}
}
