// Package dblog is the storage engine's logging seam. No structured
// logging library is pulled in here — every subsystem (bufferpool, disk
// manager, WAL) traditionally logs with bracket-tagged fmt.Printf calls
// straight to stdout (logrus/zap show up elsewhere only as transitive
// dependencies, never imported directly by application code), so this
// package keeps the bracket-tag convention, writing to stderr rather
// than stdout, instead of introducing a library nothing here actually
// reaches for.
package dblog

import (
	"fmt"
	"io"
	"os"
)

// Logger tags every line with a component name, following the
// "[BufferPool] ..." / "[HeapFileManager] ..." bracket-tag convention.
type Logger struct {
	component string
	out       io.Writer
}

// New returns a Logger that writes to os.Stderr under the given component
// tag.
func New(component string) *Logger {
	return &Logger{component: component, out: os.Stderr}
}

// WithOutput returns a copy of l writing to w instead of os.Stderr, for
// tests that want to capture log output.
func (l *Logger) WithOutput(w io.Writer) *Logger {
	return &Logger{component: l.component, out: w}
}

func (l *Logger) Printf(format string, args ...any) {
	fmt.Fprintf(l.out, "[%s] %s\n", l.component, fmt.Sprintf(format, args...))
}

func (l *Logger) Println(args ...any) {
	fmt.Fprintf(l.out, "[%s] %s\n", l.component, fmt.Sprint(args...))
}
