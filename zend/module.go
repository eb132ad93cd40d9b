package zend

import (
	"github.com/reusee/dscope"
	"github.com/reusee/zendapi/configs"
	"github.com/reusee/zendapi/logs"
	"github.com/reusee/zendapi/modes"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

// ErrorReporting is the mask of diagnostics an engine reports.
type ErrorReporting ErrorLevel

// development reports everything, production drops deprecations
const productionErrorReporting = LevelAll &^ (LevelDeprecated | LevelUserDeprecated | LevelStrict)

func (Module) ErrorReporting(
	loader configs.Loader,
	mode modes.Mode,
	logger logs.Logger,
) ErrorReporting {
	if names := configs.First[[]string](loader, "error_reporting"); len(names) > 0 {
		level, err := ParseErrorLevels(names)
		if err == nil {
			return ErrorReporting(level)
		}
		logger.Warn("bad error_reporting config",
			"error", err,
		)
	}
	if mode == modes.ModeProduction {
		return ErrorReporting(productionErrorReporting)
	}
	return ErrorReporting(LevelAll)
}

func (Module) Engine(
	logger logs.Logger,
	reporting ErrorReporting,
	newSpan logs.NewSpan,
) *Engine {
	engine := NewEngine(logger, ErrorLevel(reporting))
	engine.newSpan = newSpan
	return engine
}
