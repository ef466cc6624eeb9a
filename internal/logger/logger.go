package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// Init replaces the global zap logger. Development gets the console encoder,
// every other environment gets JSON.
func Init(environment string) error {
	var conf zap.Config
	if environment == "development" || environment == "test" {
		conf = zap.NewDevelopmentConfig()
		level.SetLevel(zapcore.DebugLevel)
	} else {
		conf = zap.NewProductionConfig()
	}
	conf.Level = level

	l, err := conf.Build()
	if err != nil {
		return fmt.Errorf("conf.Build -> %w", err)
	}

	zap.ReplaceGlobals(l)

	return nil
}

// SetLevel changes the level of the running logger, e.g. after a config reload.
func SetLevel(text string) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(text)); err != nil {
		return fmt.Errorf("lvl.UnmarshalText -> %w", err)
	}
	level.SetLevel(lvl)

	return nil
}

// Level returns the current level.
func Level() zapcore.Level {
	return level.Level()
}
