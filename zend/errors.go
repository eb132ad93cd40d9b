package zend

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var (
	ErrNotCallable         = errors.New("not callable")
	ErrDuplicateFunction   = errors.New("duplicate function name")
	ErrFunctionTableSealed = errors.New("function table is sealed")
	ErrDuplicateClass      = errors.New("duplicate class name")
	ErrAbstractClass       = errors.New("cannot instantiate abstract class")
	ErrUnknownErrorLevel   = errors.New("unknown error level")
)

// ErrorLevel is a bit mask of diagnostic severities.
type ErrorLevel int

const (
	LevelError ErrorLevel = 1 << iota
	LevelWarning
	LevelParse
	LevelNotice
	LevelCoreError
	LevelCoreWarning
	LevelCompileError
	LevelCompileWarning
	LevelUserError
	LevelUserWarning
	LevelUserNotice
	LevelStrict
	LevelRecoverableError
	LevelDeprecated
	LevelUserDeprecated

	LevelAll ErrorLevel = 1<<iota - 1
)

var levelNames = []struct {
	level ErrorLevel
	name  string
}{
	{LevelError, "E_ERROR"},
	{LevelWarning, "E_WARNING"},
	{LevelParse, "E_PARSE"},
	{LevelNotice, "E_NOTICE"},
	{LevelCoreError, "E_CORE_ERROR"},
	{LevelCoreWarning, "E_CORE_WARNING"},
	{LevelCompileError, "E_COMPILE_ERROR"},
	{LevelCompileWarning, "E_COMPILE_WARNING"},
	{LevelUserError, "E_USER_ERROR"},
	{LevelUserWarning, "E_USER_WARNING"},
	{LevelUserNotice, "E_USER_NOTICE"},
	{LevelStrict, "E_STRICT"},
	{LevelRecoverableError, "E_RECOVERABLE_ERROR"},
	{LevelDeprecated, "E_DEPRECATED"},
	{LevelUserDeprecated, "E_USER_DEPRECATED"},
	{LevelAll, "E_ALL"},
}

func (l ErrorLevel) String() string {
	for _, entry := range levelNames {
		if entry.level == l {
			return entry.name
		}
	}
	var names []string
	for _, entry := range levelNames[:len(levelNames)-1] {
		if l&entry.level != 0 {
			names = append(names, entry.name)
		}
	}
	if len(names) == 0 {
		return fmt.Sprintf("E_(%d)", int(l))
	}
	return strings.Join(names, "|")
}

// ParseErrorLevels combines level names. A name prefixed with "~" clears its
// bits, so ["E_ALL", "~E_DEPRECATED"] enables everything but deprecations.
func ParseErrorLevels(names []string) (ErrorLevel, error) {
	var ret ErrorLevel
	for _, name := range names {
		name = strings.TrimSpace(name)
		negate := strings.HasPrefix(name, "~")
		name = strings.TrimPrefix(name, "~")
		level, ok := lookupLevel(name)
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownErrorLevel, name)
		}
		if negate {
			ret &^= level
		} else {
			ret |= level
		}
	}
	return ret, nil
}

func lookupLevel(name string) (ErrorLevel, bool) {
	for _, entry := range levelNames {
		if entry.name == name {
			return entry.level, true
		}
	}
	return 0, false
}

func (l ErrorLevel) slogLevel() slog.Level {
	switch {
	case l&(LevelError|LevelParse|LevelCoreError|LevelCompileError|LevelUserError|LevelRecoverableError) != 0:
		return slog.LevelError
	case l&(LevelWarning|LevelCoreWarning|LevelCompileWarning|LevelUserWarning) != 0:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// Diagnostic is one reported error, warning or notice.
type Diagnostic struct {
	Level   ErrorLevel
	Message string
}
