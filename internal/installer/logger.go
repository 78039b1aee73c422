package installer

import (
	"fmt"
	"sync"

	"github.com/pterm/pterm"
)

// Logger receives the human-readable progress of an installation.
type Logger interface {
	Info(format string, a ...any)
	Success(format string, a ...any)
	Warning(format string, a ...any)
	Error(format string, a ...any)
	// Plain prints a line without a level prefix.
	Plain(format string, a ...any)
}

// ConsoleLogger prints through pterm's prefix printers.
type ConsoleLogger struct{}

func (ConsoleLogger) Info(format string, a ...any)    { pterm.Info.Printfln(format, a...) }
func (ConsoleLogger) Success(format string, a ...any) { pterm.Success.Printfln(format, a...) }
func (ConsoleLogger) Warning(format string, a ...any) { pterm.Warning.Printfln(format, a...) }
func (ConsoleLogger) Error(format string, a ...any)   { pterm.Error.Printfln(format, a...) }
func (ConsoleLogger) Plain(format string, a ...any)   { pterm.Printfln(format, a...) }

// Level classifies a recorded line.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
	LevelPlain   Level = "plain"
)

// Line is one recorded log line.
type Line struct {
	Level Level
	Text  string
}

// LineLogger records lines in memory. The graphical mode drains it after every
// step to stream the output into its log pane.
type LineLogger struct {
	mu    sync.Mutex
	lines []Line
}

func (l *LineLogger) add(level Level, format string, a ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, Line{Level: level, Text: fmt.Sprintf(format, a...)})
}

func (l *LineLogger) Info(format string, a ...any)    { l.add(LevelInfo, format, a...) }
func (l *LineLogger) Success(format string, a ...any) { l.add(LevelSuccess, format, a...) }
func (l *LineLogger) Warning(format string, a ...any) { l.add(LevelWarning, format, a...) }
func (l *LineLogger) Error(format string, a ...any)   { l.add(LevelError, format, a...) }
func (l *LineLogger) Plain(format string, a ...any)   { l.add(LevelPlain, format, a...) }

// Lines returns a copy of everything recorded so far.
func (l *LineLogger) Lines() []Line {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Line(nil), l.lines...)
}

// Drain returns the recorded lines and forgets them.
func (l *LineLogger) Drain() []Line {
	l.mu.Lock()
	defer l.mu.Unlock()
	lines := l.lines
	l.lines = nil
	return lines
}
