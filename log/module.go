package log

import (
	"github.com/neuronlabs/uni-logger"
)

// ModuleLogger is the logger used by the specific packages. It prefixes each message
// with the module name and filters messages by its own level.
type ModuleLogger struct {
	Name  string
	level unilogger.Level
}

// NewModuleLogger creates new module logger for given 'name' of the module.
// The module logger writes through the package logger set by SetLogger.
func NewModuleLogger(name string) *ModuleLogger {
	return &ModuleLogger{Name: name, level: LUNKNOWN}
}

// Level gets the module logger level. If the level was not set the package level is returned.
func (m *ModuleLogger) Level() unilogger.Level {
	if m.level == LUNKNOWN {
		return currentLevel
	}
	return m.level
}

// SetLevel sets the moduleLogger level.
func (m *ModuleLogger) SetLevel(level unilogger.Level) {
	m.level = level
}

// Debug3f writes the formatted debug3 log.
func (m *ModuleLogger) Debug3f(format string, args ...interface{}) {
	if m.allows(LDEBUG3) {
		Debug3f(m.prefix(format), args...)
	}
}

// Debug2f writes the formatted debug2 log.
func (m *ModuleLogger) Debug2f(format string, args ...interface{}) {
	if m.allows(LDEBUG2) {
		Debug2f(m.prefix(format), args...)
	}
}

// Debugf writes the formatted debug log.
func (m *ModuleLogger) Debugf(format string, args ...interface{}) {
	if m.allows(LDEBUG) {
		Debugf(m.prefix(format), args...)
	}
}

// Infof writes the formatted info log.
func (m *ModuleLogger) Infof(format string, args ...interface{}) {
	if m.allows(LINFO) {
		Infof(m.prefix(format), args...)
	}
}

// Warningf writes the formatted warning log.
func (m *ModuleLogger) Warningf(format string, args ...interface{}) {
	if m.allows(LWARNING) {
		Warningf(m.prefix(format), args...)
	}
}

// Errorf writes the formatted error log.
func (m *ModuleLogger) Errorf(format string, args ...interface{}) {
	if m.allows(LERROR) {
		Errorf(m.prefix(format), args...)
	}
}

func (m *ModuleLogger) allows(level unilogger.Level) bool {
	return logger != nil && m.Level() <= level
}

func (m *ModuleLogger) prefix(format string) string {
	return "[" + m.Name + "] " + format
}
