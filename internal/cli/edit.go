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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"shapekit/internal/shape"
	"shapekit/internal/vector"
)

func (a *app) newResizeCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "resize <scene.json> <id> <minX> <minY> <maxX> <maxY>",
		Short: "Resize one shape into a target box and print the updated scene",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			v, err := parseFloats(args[2:])
			if err != nil {
				return err
			}
			reg, doc, err := a.loadScene(ctx, args[0])
			if err != nil {
				return err
			}
			id := args[1]
			before, err := reg.Bounds(id)
			if err != nil {
				return err
			}
			target := vector.BoundsFromCorners(vector.Pt{X: v[0], Y: v[1]}, vector.Pt{X: v[2], Y: v[3]})
			info := shape.TransformInfo{ScaleX: ratio(target.Width, before.Width), ScaleY: ratio(target.Height, before.Height)}
			if err := reg.BeginResize(id); err != nil {
				return err
			}
			next, err := reg.Resize(id, target, info)
			if err != nil {
				if _, cerr := reg.CancelResize(id); cerr != nil {
					a.logger().ErrorContext(ctx, "cancel resize", slog.Any("err", cerr))
				}
				return err
			}
			if err := reg.EndResize(id); err != nil {
				return err
			}
			a.logger().InfoContext(ctx, "shape resized", slog.String("id", id),
				slog.Any("point", next.Point), slog.Any("size", next.Size))
			return writeScene(cmd.OutOrStdout(), out, doc, reg)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write the scene to a file instead of stdout")
	return cmd
}

func (a *app) newGroupCmd() *cobra.Command {
	var (
		out          string
		ids          []string
		flipX, flipY bool
		keepAspect   bool
	)
	cmd := &cobra.Command{
		Use:   "group <scene.json> <minX> <minY> <maxX> <maxY>",
		Short: "Fit several shapes into a target box as one group",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			v, err := parseFloats(args[1:])
			if err != nil {
				return err
			}
			reg, doc, err := a.loadScene(ctx, args[0])
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				for _, s := range reg.Shapes() {
					ids = append(ids, s.ID)
				}
			}
			if keepAspect {
				for _, id := range ids {
					s, err := reg.Get(id)
					if err != nil {
						return err
					}
					s.IsAspectRatioLocked = true
					if _, err := reg.Add(s); err != nil {
						return err
					}
				}
			}
			target := vector.BoundsFromCorners(vector.Pt{X: v[0], Y: v[1]}, vector.Pt{X: v[2], Y: v[3]})
			if err := reg.BeginGroup(ids); err != nil {
				return err
			}
			if _, err := reg.TransformGroup(target, flipX, flipY); err != nil {
				if cerr := reg.CancelGroup(); cerr != nil {
					a.logger().ErrorContext(ctx, "cancel group", slog.Any("err", cerr))
				}
				return err
			}
			if err := reg.EndGroup(); err != nil {
				return err
			}
			a.logger().InfoContext(ctx, "group transformed", slog.Int("shapes", len(ids)))
			return writeScene(cmd.OutOrStdout(), out, doc, reg)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&out, "output", "o", "", "write the scene to a file instead of stdout")
	f.StringSliceVar(&ids, "ids", nil, "shape ids (default all)")
	f.BoolVar(&flipX, "flip-x", false, "mirror horizontally")
	f.BoolVar(&flipY, "flip-y", false, "mirror vertically")
	f.BoolVar(&keepAspect, "keep-aspect", false, "scale members uniformly")
	return cmd
}

func (a *app) newIndicatorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indicator <scene.json> <id>",
		Short: "Print the selection indicator of a shape as an SVG element",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := a.loadScene(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ind, err := reg.Indicator(args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), ind.SVG())
			return err
		},
	}
}

func (a *app) newBoundsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bounds <scene.json>",
		Short: "Print the local bounds of every shape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := a.loadScene(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tX\tY\tW\tH\tROTATION")
			for _, s := range reg.Shapes() {
				b, err := reg.Bounds(s.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%g\t%g\t%g\t%g\t%g\n", s.ID, s.Point.X, s.Point.Y, b.Width, b.Height, s.Rotation)
			}
			return tw.Flush()
		},
	}
}

func ratio(a, b float32) float32 {
	if b == 0 {
		return 1
	}
	return a / b
}
