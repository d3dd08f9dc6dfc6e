/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"shapekit/internal/export"
	"shapekit/internal/shape"
	"shapekit/internal/vector"
)

var darkBackground = vector.MustHex("#212529")

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file; empty or "-" writes to stdout
	format   string   // svg, png or pdf; empty derives from output or config
	scale    float32  // raster scale; zero uses config
	padding  float32  // margin around the shapes; negative uses config
	dark     bool     // dark theme colors
	guides   bool     // draw the page outline
	selected []string // shape ids drawn as selected
	ghosts   []string // shape ids drawn ghosted
	preset   string   // web or print; writes all preset formats into outDir
	outDir   string
}

func (a *app) newRenderCmd() *cobra.Command {
	opts := renderOpts{padding: -1}
	cmd := &cobra.Command{
		Use:   "render <scene.json>",
		Short: "Render a scene to SVG, PNG or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd, args[0], opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	f.StringVarP(&opts.format, "format", "f", "", "output format: svg, png, pdf")
	f.Float32Var(&opts.scale, "scale", 0, "pixels per scene unit for raster output")
	f.Float32Var(&opts.padding, "padding", -1, "margin around the shapes")
	f.BoolVar(&opts.dark, "dark", false, "use dark theme colors")
	f.BoolVar(&opts.guides, "guides", false, "outline the page")
	f.StringSliceVar(&opts.selected, "selected", nil, "ids of selected shapes")
	f.StringSliceVar(&opts.ghosts, "ghost", nil, "ids of ghosted shapes")
	f.StringVar(&opts.preset, "preset", "", "export preset: web or print")
	f.StringVar(&opts.outDir, "out-dir", "", "output directory for --preset")
	return cmd
}

func (a *app) runRender(cmd *cobra.Command, path string, opts renderOpts) error {
	ctx := cmd.Context()
	reg, doc, err := a.loadScene(ctx, path)
	if err != nil {
		return err
	}
	dark := opts.dark || a.cfg.General.DarkMode()
	base := shape.RenderState{IsDarkMode: dark}
	states := map[string]shape.RenderState{}
	for _, id := range opts.selected {
		st := states[id]
		st.IsDarkMode, st.IsSelected = dark, true
		states[id] = st
	}
	for _, id := range opts.ghosts {
		st := states[id]
		st.IsDarkMode, st.IsGhost = dark, true
		states[id] = st
	}
	page, err := reg.RenderPage(base, states)
	if err != nil {
		return err
	}

	padding := opts.padding
	if padding < 0 {
		padding = a.cfg.Render.Padding
	}
	sc := export.Frame(page, padding)
	sc.Background = vector.White
	if dark {
		sc.Background = darkBackground
	}
	sc.Title = doc.Name

	eo := export.Options{Scale: opts.scale, Fonts: reg.RenderOptions().Fonts, Guides: opts.guides}
	if eo.Scale <= 0 {
		eo.Scale = a.cfg.Render.Scale
	}

	if opts.preset != "" {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		files, err := export.BatchExport(sc, export.BatchOptions{
			Preset:        export.PresetName(opts.preset),
			BaseName:      name,
			OutDir:        opts.outDir,
			ScaleOverride: opts.scale,
			IncludeGuides: flagPtr(cmd, "guides", opts.guides),
			Options:       eo,
		})
		if err != nil {
			return err
		}
		for _, f := range files {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), f); err != nil {
				return err
			}
		}
		a.logger().InfoContext(ctx, "preset exported", slog.String("preset", opts.preset), slog.Int("files", len(files)))
		return nil
	}

	format, err := a.outputFormat(opts)
	if err != nil {
		return err
	}
	if opts.output == "" || opts.output == "-" {
		return export.Write(cmd.OutOrStdout(), format, sc, eo)
	}
	if err := export.WriteFile(opts.output, format, sc, eo); err != nil {
		return err
	}
	a.logger().InfoContext(ctx, "scene rendered",
		slog.String("out", opts.output), slog.String("format", string(format)), slog.Int("shapes", reg.Len()))
	return nil
}

// outputFormat picks the flag, then the output extension, then the config.
func (a *app) outputFormat(opts renderOpts) (export.Format, error) {
	if opts.format != "" {
		return export.ParseFormat(opts.format)
	}
	if opts.output != "" && opts.output != "-" && filepath.Ext(opts.output) != "" {
		return export.FormatFromPath(opts.output)
	}
	return export.ParseFormat(a.cfg.Render.Format)
}

// flagPtr returns &v when the flag was given explicitly, nil otherwise.
func flagPtr(cmd *cobra.Command, name string, v bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}
