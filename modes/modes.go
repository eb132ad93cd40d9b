package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

// Mode selects defaults the way development and production ini files do.
type Mode uint8

const (
	ModeDevelopment Mode = iota + 1
	ModeProduction
)

func (m Mode) String() string {
	switch m {
	case ModeDevelopment:
		return "development"
	case ModeProduction:
		return "production"
	}
	return "unknown"
}

type ModuleForProduction struct {
	dscope.Module
}

func ForProduction() ModuleForProduction {
	return ModuleForProduction{}
}

func (ModuleForProduction) Mode() Mode {
	return ModeProduction
}

func (ModuleForProduction) T() *testing.T {
	return nil
}

type ModuleForDevelopment struct {
	dscope.Module
}

func ForDevelopment() ModuleForDevelopment {
	return ModuleForDevelopment{}
}

func (ModuleForDevelopment) Mode() Mode {
	return ModeDevelopment
}

func (ModuleForDevelopment) T() *testing.T {
	return nil
}

// ModuleForTest runs in development mode and exposes the running test.
type ModuleForTest struct {
	dscope.Module
	t *testing.T
}

func ForTest(t *testing.T) ModuleForTest {
	return ModuleForTest{
		t: t,
	}
}

func (m ModuleForTest) T() *testing.T {
	return m.t
}

func (ModuleForTest) Mode() Mode {
	return ModeDevelopment
}
