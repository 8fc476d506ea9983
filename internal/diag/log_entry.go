package diag

import (
	"fmt"
	"time"
)

// Level represents the severity of a log entry.
type Level int

const (
	LevelNone Level = iota
	LevelError
	LevelWarning
	LevelInfo
	LevelDebug
)

// String returns the string representation of a level.
func (l Level) String() string {
	switch l {
	case LevelNone:
		return "NONE"
	case LevelError:
		return "ERROR"
	case LevelWarning:
		return "WARNING"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// Component identifies the subsystem that produced a log entry.
type Component string

const (
	ComponentRecognizer Component = "Recognizer"
	ComponentCharSet    Component = "CharSet"
	ComponentBuffer     Component = "Buffer"
	ComponentWM         Component = "WM"
	ComponentFocus      Component = "Focus"
	ComponentDispatch   Component = "Dispatch"
	ComponentControl    Component = "Control"
	ComponentConfig     Component = "Config"
)

// Entry is a single log entry.
type Entry struct {
	Timestamp time.Time
	Component Component
	Level     Level
	Message   string
}

// Format renders the entry as a single human-readable line.
func (e Entry) Format() string {
	return fmt.Sprintf("[%s] [%s] %s: %s", e.Timestamp.Format("15:04:05.000"), e.Component, e.Level, e.Message)
}
