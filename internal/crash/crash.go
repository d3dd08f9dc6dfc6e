/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns panics at the CLI boundary into a logged error, a
// report file and exit code 2.
package crash

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	applog "shapekit/internal/log"
	"shapekit/internal/version"
)

var (
	exitFn           = os.Exit
	stderr io.Writer = os.Stderr
)

// Info describes what was running when the panic happened.
type Info struct {
	Dir   string   // report directory; empty means os.TempDir()
	Scene string   // scene file being processed, if any
	Args  []string // command line
}

// Recover captures a panic, logs an error with stacktrace, writes an error
// report file and exits with code 2.
//
// Usage: defer crash.Recover(info)
func Recover(info Info) {
	if r := recover(); r != nil {
		l := applog.WithComponent("crash")
		stack := debug.Stack()
		l.Error("panic recovered", slog.Any("panic", r), slog.String("scene", info.Scene), slog.String("stack", string(stack)))

		reportPath, err := writeReport(info, r, stack)
		if err != nil {
			l.Error("crash report not written", slog.Any("err", err), slog.String("path", reportPath))
		}

		fmt.Fprintf(stderr, "shapekit %s (%s/%s) crashed: %v\nreport: %s\n",
			version.String(), runtime.GOOS, runtime.GOARCH, r, reportPath)
		exitFn(2)
	}
}

func writeReport(info Info, panicVal any, stack []byte) (string, error) {
	dir := info.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(dir, fmt.Sprintf("shapekit-crash-%s.log", stamp))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return path, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return path, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			applog.WithComponent("crash").Error("failed to close crash report file", slog.Any("err", err), slog.String("path", path))
		}
	}()

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "shapekit Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if len(info.Args) > 0 {
		_, _ = fmt.Fprintf(&buf, "Args: %s\n", strings.Join(info.Args, " "))
	}
	if info.Scene != "" {
		_, _ = fmt.Fprintf(&buf, "Scene: %s\n", info.Scene)
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if _, err := f.Write(buf.Bytes()); err != nil {
		return path, err
	}
	_ = f.Sync()
	return path, nil
}
