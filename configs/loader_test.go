package configs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/reusee/dscope"
)

func TestLoaderAssignFirst(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/prod.cue",
		"testdata/dev.cue",
	}, schema)

	var levels []string
	if err := loader.AssignFirst("error_reporting", &levels); err != nil {
		t.Fatal(err)
	}
	if str := fmt.Sprintf("%v", levels); str != "[E_ALL ~E_DEPRECATED ~E_STRICT]" {
		t.Fatalf("got %s", str)
	}

	// falls through to the second file
	var level string
	if err := loader.AssignFirst("log_level", &level); err != nil {
		t.Fatal(err)
	}
	if level != "debug" {
		t.Fatalf("got %q", level)
	}

	err := loader.AssignFirst("not", &level)
	if !errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestLoaderNoFiles(t *testing.T) {
	loader := NewLoader(nil, schema)
	var level string
	err := loader.AssignFirst("log_level", &level)
	if !errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestUnknownField(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/bad.cue",
	}, schema)
	var str string
	err := loader.AssignFirst("unknown_field", &str)
	if err == nil {
		t.Fatal("should error")
	}
}

func TestMissingFile(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/missing.cue",
	}, schema)
	var str string
	if err := loader.AssignFirst("log_level", &str); err == nil {
		t.Fatal("should error")
	}
}

func TestFirst(t *testing.T) {
	loader := NewLoader([]string{"testdata/dev.cue"}, schema)

	level := First[string](loader, "log_level")
	if level != "debug" {
		t.Fatalf("got %v", level)
	}

	if n := First[int](loader, "console.max_conns"); n != 2 {
		t.Fatalf("got %v", n)
	}

	levels := First[[]string](loader, "not_defined")
	if levels != nil {
		t.Fatalf("got %v", levels)
	}
}

func TestModuleLoader(t *testing.T) {
	dscope.New(new(Module)).Fork(
		func() Files {
			return Files{"testdata/prod.cue"}
		},
	).Call(func(
		loader Loader,
	) {
		levels := First[[]string](loader, "error_reporting")
		if len(levels) != 3 {
			t.Fatalf("got %v", levels)
		}
	})
}
