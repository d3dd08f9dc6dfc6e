/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package cli implements the shapekit command line: rendering scenes,
// driving resize and group transforms, and inspecting bounds and indicators.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"shapekit/internal/config"
	applog "shapekit/internal/log"
	"shapekit/internal/registry"
	"shapekit/internal/scene"
	"shapekit/internal/shape"
	"shapekit/internal/version"
)

// app carries what every subcommand shares once the root has run.
type app struct {
	cfg config.AppConfig
	log *slog.Logger
}

// Execute runs the CLI with args (without the program name).
func Execute(ctx context.Context, args []string) error {
	root := NewRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCmd builds the command tree. Configuration and logging are set up
// before any subcommand runs.
func NewRootCmd() *cobra.Command {
	a := &app{cfg: config.Defaults()}
	var verbose bool

	root := &cobra.Command{
		Use:           "shapekit",
		Short:         "shapekit renders and transforms rectangle shapes",
		Long:          `shapekit loads JSON scenes of rectangle shapes, renders them to SVG, PNG or PDF, and applies resize and group transforms the way an editor drag would.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if verbose {
				cfg.Logging.Level = "debug"
			}
			a.cfg = cfg
			applog.Init(applog.Options{
				Level:     cfg.Logging.Level,
				Format:    cfg.Logging.Format,
				AddSource: cfg.Logging.Source,
				File:      cfg.Logging.File,
				Writer:    cmd.ErrOrStderr(),
			})
			a.log = applog.WithComponent("cli")
			if len(args) > 0 {
				cmd.SetContext(applog.WithScene(cmd.Context(), args[0]))
			}
			return nil
		},
	}
	root.SetVersionTemplate("shapekit {{.Version}}\n")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(a.newRenderCmd())
	root.AddCommand(a.newResizeCmd())
	root.AddCommand(a.newGroupCmd())
	root.AddCommand(a.newIndicatorCmd())
	root.AddCommand(a.newBoundsCmd())
	root.AddCommand(a.newConfigCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}

// loadScene reads a scene file into a fresh registry configured from the
// user config.
func (a *app) loadScene(ctx context.Context, path string) (*registry.Registry, scene.Document, error) {
	doc, err := scene.ReadFile(path)
	if err != nil {
		return nil, scene.Document{}, err
	}
	fonts, err := a.cfg.Render.FontProvider()
	if err != nil {
		return nil, scene.Document{}, err
	}
	reg := registry.New()
	reg.SetRenderOptions(shape.RenderOptions{Fonts: fonts, GhostOpacity: a.cfg.Render.GhostOpacity})
	for _, s := range doc.ToShapes() {
		if _, err := reg.Add(s); err != nil {
			return nil, scene.Document{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	a.logger().DebugContext(ctx, "scene loaded", slog.Int("shapes", reg.Len()))
	return reg, doc, nil
}

// writeScene writes the registry's shapes to out, or to w when out is empty.
func writeScene(w io.Writer, out string, doc scene.Document, reg *registry.Registry) error {
	next := scene.FromShapes(doc.Name, reg.Shapes())
	if out != "" {
		return scene.WriteFile(out, next)
	}
	data, err := scene.Encode(next)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// logger returns the cli logger; records logged with a context carry the
// scene path set by the root command.
func (a *app) logger() *slog.Logger {
	if a.log == nil {
		a.log = applog.WithComponent("cli")
	}
	return a.log
}

// parseFloats converts positional arguments to float32 values.
func parseFloats(args []string) ([]float32, error) {
	out := make([]float32, len(args))
	for i, s := range args {
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = float32(v)
	}
	return out, nil
}
