package zend

import (
	"errors"
	"log/slog"
	"testing"
)

func TestParseErrorLevels(t *testing.T) {
	level, err := ParseErrorLevels([]string{"E_ALL", "~E_DEPRECATED", " ~E_STRICT "})
	if err != nil {
		t.Fatal(err)
	}
	if level != LevelAll&^(LevelDeprecated|LevelStrict) {
		t.Fatalf("got %v", level)
	}
	if level&LevelNotice == 0 {
		t.Fatal()
	}

	level, err = ParseErrorLevels([]string{"E_ERROR", "E_WARNING"})
	if err != nil {
		t.Fatal(err)
	}
	if level.String() != "E_ERROR|E_WARNING" {
		t.Fatalf("got %v", level)
	}

	_, err = ParseErrorLevels([]string{"E_FOO"})
	if !errors.Is(err, ErrUnknownErrorLevel) {
		t.Fatalf("got %v", err)
	}
}

func TestErrorLevelString(t *testing.T) {
	if LevelAll.String() != "E_ALL" {
		t.Fatalf("got %v", LevelAll)
	}
	if LevelAll != 32767 {
		t.Fatalf("got %d", LevelAll)
	}
	if LevelUserDeprecated.String() != "E_USER_DEPRECATED" {
		t.Fatal()
	}
	if ErrorLevel(0).String() != "E_(0)" {
		t.Fatal()
	}
}

func TestSlogLevel(t *testing.T) {
	for _, c := range []struct {
		level    ErrorLevel
		expected slog.Level
	}{
		{LevelError, slog.LevelError},
		{LevelRecoverableError, slog.LevelError},
		{LevelWarning, slog.LevelWarn},
		{LevelCoreWarning, slog.LevelWarn},
		{LevelNotice, slog.LevelInfo},
		{LevelDeprecated, slog.LevelInfo},
	} {
		if got := c.level.slogLevel(); got != c.expected {
			t.Fatalf("%v: got %v", c.level, got)
		}
	}
}
