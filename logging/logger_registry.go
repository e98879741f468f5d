package logging

import (
	"fmt"
	"regexp"
	"sync"
)

// Registry tracks every named Logger registered through RegisterLogger or GetOrRegister
// (Sublogger does not register anything), along with the pattern-based level config last applied to them, so that
// a running planner can re-level a family of sub-loggers (e.g. "planner.bfs3d.*") by name
// without holding a reference to every one of them.
type Registry struct {
	mu        sync.RWMutex
	loggers   map[string]Logger
	logConfig []LoggerPatternConfig
}

func newRegistry() *Registry {
	return &Registry{
		loggers: make(map[string]Logger),
	}
}

var globalLoggerRegistry = newRegistry()

// RegisterLogger registers a new logger with a given name.
func RegisterLogger(name string, logger Logger) {
	globalLoggerRegistry.registerLogger(name, logger)
}

// DeregisterLogger removes a logger with a given name from the registry.
func DeregisterLogger(name string) bool {
	return globalLoggerRegistry.deregisterLogger(name)
}

// LoggerNamed returns the logger with the specified name, if it has been registered.
func LoggerNamed(name string) (logger Logger, ok bool) {
	return globalLoggerRegistry.loggerNamed(name)
}

// UpdateLoggerLevel assigns level to the named logger in the registry.
func UpdateLoggerLevel(name string, level Level) error {
	return globalLoggerRegistry.updateLoggerLevel(name, level)
}

// GetRegisteredLoggerNames returns the names of all loggers in the registry.
func GetRegisteredLoggerNames() []string {
	return globalLoggerRegistry.getRegisteredLoggerNames()
}

// UpdateConfig applies a new set of logger-level patterns to every registered logger,
// resetting any registered logger not matched by a pattern back to INFO.
func UpdateConfig(logConfig []LoggerPatternConfig, errorLogger Logger) error {
	return globalLoggerRegistry.UpdateConfig(logConfig, errorLogger)
}

// GetOrRegister returns the existing logger registered under name, or registers and
// returns logger if none exists yet, applying any matching pattern config to it first.
func GetOrRegister(name string, logger Logger) Logger {
	return globalLoggerRegistry.getOrRegister(name, logger)
}

func (lr *Registry) registerLogger(name string, logger Logger) {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.loggers[name] = logger
}

func (lr *Registry) deregisterLogger(name string) bool {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	_, ok := lr.loggers[name]
	if ok {
		delete(lr.loggers, name)
	}
	return ok
}

func (lr *Registry) loggerNamed(name string) (logger Logger, ok bool) {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	logger, ok = lr.loggers[name]
	return
}

func (lr *Registry) updateLoggerLevelWithCfg(name string) error {
	lr.mu.RLock()
	defer lr.mu.RUnlock()

	for _, lpc := range lr.logConfig {
		r, err := regexp.Compile(buildRegexFromPattern(lpc.Pattern))
		if err != nil {
			return err
		}
		if r.MatchString(name) {
			logger, ok := lr.loggers[name]
			if !ok {
				return fmt.Errorf("logger named %s not recognized", name)
			}
			level, err := LevelFromString(lpc.Level)
			if err != nil {
				return err
			}
			logger.SetLevel(level)
		}
	}

	return nil
}

func (lr *Registry) updateLoggerLevel(name string, level Level) error {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	logger, ok := lr.loggers[name]
	if !ok {
		return fmt.Errorf("logger named %s not recognized", name)
	}
	logger.SetLevel(level)
	return nil
}

func (lr *Registry) UpdateConfig(logConfig []LoggerPatternConfig, errorLogger Logger) error {
	lr.mu.Lock()
	lr.logConfig = logConfig
	lr.mu.Unlock()

	appliedConfigs := make(map[string]Level)
	for _, lpc := range logConfig {
		if !validatePattern(lpc.Pattern) {
			errorLogger.Warnw("failed to validate a pattern", "pattern", lpc.Pattern)
			continue
		}

		r, err := regexp.Compile(buildRegexFromPattern(lpc.Pattern))
		if err != nil {
			return err
		}

		for _, name := range lr.getRegisteredLoggerNames() {
			if r.MatchString(name) {
				level, err := LevelFromString(lpc.Level)
				if err != nil {
					return err
				}
				appliedConfigs[name] = level
			}
		}
	}

	for _, name := range lr.getRegisteredLoggerNames() {
		level, ok := appliedConfigs[name]
		if !ok {
			level = INFO
		}
		err := lr.updateLoggerLevel(name, level)
		if err != nil {
			return err
		}
	}

	return nil
}

func (lr *Registry) getRegisteredLoggerNames() []string {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	registeredNames := make([]string, 0, len(lr.loggers))
	for name := range lr.loggers {
		registeredNames = append(registeredNames, name)
	}
	return registeredNames
}

func (lr *Registry) getCurrentConfig() []LoggerPatternConfig {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	return lr.logConfig
}

// getOrRegister will either:
//   - return an existing logger for the input logger `name` or
//   - register the input `logger` for the given logger `name` and configure it based on the
//     existing patterns.
//
// Such that if concurrent callers try registering the same logger, the "winner"s logger will be
// registered and all losers will return the winning logger.
//
// It is expected in racing scenarios that all callers are trying to register behaviorly equivalent
// `logger` objects.
func (lr *Registry) getOrRegister(name string, logger Logger) Logger {
	lr.mu.Lock()
	if existingLogger, ok := lr.loggers[name]; ok {
		lr.mu.Unlock()
		return existingLogger
	}

	lr.loggers[name] = logger
	lr.mu.Unlock()
	// updateLoggerLevelWithCfg takes the read lock itself, so the write lock is released first.
	lr.updateLoggerLevelWithCfg(name)
	return logger
}
