package log

import (
	"fmt"
	"strings"
)

// FormatType format for logging
type FormatType int

const (
	// FormatTypeText logging as text
	FormatTypeText FormatType = iota
	// FormatTypeJSON JSON format
	FormatTypeJSON
)

// Level log level
type Level int

const (
	LevelInfo Level = iota
	LevelTrace
	LevelDebug
	LevelWarn
	LevelError
	LevelFatal
)

// nolint:gochecknoglobals
var (
	formatTypeNames = []string{"text", "json"}
	levelNames      = []string{"info", "trace", "debug", "warn", "error", "fatal"}
)

// FormatTypeNames returns the accepted format names
func FormatTypeNames() []string {
	return append([]string(nil), formatTypeNames...)
}

// LevelNames returns the accepted level names
func LevelNames() []string {
	return append([]string(nil), levelNames...)
}

func (x FormatType) String() string {
	if int(x) >= 0 && int(x) < len(formatTypeNames) {
		return formatTypeNames[x]
	}

	return fmt.Sprintf("FormatType(%d)", x)
}

// ParseFormatType converts a string to a FormatType
func ParseFormatType(name string) (FormatType, error) {
	for i, n := range formatTypeNames {
		if strings.EqualFold(n, name) {
			return FormatType(i), nil
		}
	}

	return FormatType(0), fmt.Errorf("%s is not a valid FormatType, try [%s]",
		name, strings.Join(formatTypeNames, ", "))
}

// MarshalText implements `encoding.TextMarshaler`.
func (x FormatType) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements `encoding.TextUnmarshaler`.
func (x *FormatType) UnmarshalText(text []byte) error {
	tmp, err := ParseFormatType(string(text))
	if err != nil {
		return err
	}

	*x = tmp

	return nil
}

func (x Level) String() string {
	if int(x) >= 0 && int(x) < len(levelNames) {
		return levelNames[x]
	}

	return fmt.Sprintf("Level(%d)", x)
}

// ParseLevel converts a string to a Level
func ParseLevel(name string) (Level, error) {
	for i, n := range levelNames {
		if strings.EqualFold(n, name) {
			return Level(i), nil
		}
	}

	return Level(0), fmt.Errorf("%s is not a valid Level, try [%s]", name, strings.Join(levelNames, ", "))
}

// MarshalText implements `encoding.TextMarshaler`.
func (x Level) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements `encoding.TextUnmarshaler`.
func (x *Level) UnmarshalText(text []byte) error {
	tmp, err := ParseLevel(string(text))
	if err != nil {
		return err
	}

	*x = tmp

	return nil
}
