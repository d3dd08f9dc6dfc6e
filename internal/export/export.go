/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes rendered shape scenes as SVG, PNG or PDF.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"shapekit/internal/textlayout"
	"shapekit/internal/vector"
)

// Format names an output format.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// ParseFormat accepts a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSVG, FormatPNG, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format: %q", s)
	}
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("no file extension in %q", path)
	}
	return ParseFormat(ext)
}

// Scene is a rendered page ready for export. View is the page region that
// becomes the output canvas.
type Scene struct {
	Root       *vector.Group
	View       vector.Rect
	Background vector.Color // Transparent leaves the canvas empty
	Title      string
}

// Frame builds a scene whose view is the bounds of root grown by padding on
// every side. An empty root gets a 1x1 view at the origin.
func Frame(root *vector.Group, padding float32) Scene {
	view := vector.R(0, 0, 1, 1)
	if root != nil && len(root.Children) > 0 {
		view = root.Bounds().Inset(-padding, -padding)
	}
	if view.W < 1 {
		view.W = 1
	}
	if view.H < 1 {
		view.H = 1
	}
	return Scene{Root: root, View: view}
}

// Options are shared by all exporters.
type Options struct {
	// Scale is output pixels per scene unit for PNG and the SVG width and
	// height attributes. Zero means 1.
	Scale float32
	// Fonts measures and draws label text in PNG output; nil uses
	// textlayout.BasicProvider.
	Fonts textlayout.Provider
	// Guides draws a hairline around the view.
	Guides     bool
	GuideColor vector.Color
}

func (o Options) scale() float32 {
	if o.Scale <= 0 {
		return 1
	}
	return o.Scale
}

func (o Options) guideColor() vector.Color {
	if o.GuideColor == (vector.Color{}) {
		return vector.Color{R: 255, A: 255}
	}
	return o.GuideColor
}

// Write encodes sc in format f.
func Write(w io.Writer, f Format, sc Scene, opt Options) error {
	switch f {
	case FormatSVG:
		return WriteSVG(w, sc, opt)
	case FormatPNG:
		return WritePNG(w, sc, opt)
	case FormatPDF:
		return WritePDF(w, sc, opt)
	default:
		return fmt.Errorf("unknown format: %q", f)
	}
}

// WriteFile encodes sc into path, creating parent directories as needed.
// An empty format is derived from the extension of path.
func WriteFile(path string, f Format, sc Scene, opt Options) error {
	if f == "" {
		var err error
		if f, err = FormatFromPath(path); err != nil {
			return err
		}
	}
	var buf bytes.Buffer
	if err := Write(&buf, f, sc, opt); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f, err)
	}
	return nil
}
