// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"fmt"
	"runtime"
	"strings"
)

type stacktrace []uintptr

func callers(skip int) stacktrace {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip+2, pcs)
	return pcs[:n]
}

// Format writes one "function\n\tfile:line" pair per frame
func (s stacktrace) Format(f fmt.State, _ rune) {
	frames := runtime.CallersFrames(s)
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	_, _ = f.Write([]byte(sb.String()))
}
