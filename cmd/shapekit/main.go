/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"shapekit/internal/cli"
	"shapekit/internal/crash"
)

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	defer crash.Recover(crash.Info{Args: os.Args, Scene: sceneArg(os.Args)})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cli.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// sceneArg returns the first argument that names a JSON file, if any.
func sceneArg(args []string) string {
	for _, a := range args[1:] {
		if strings.HasSuffix(a, ".json") {
			return a
		}
	}
	return ""
}
