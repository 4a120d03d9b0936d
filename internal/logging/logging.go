package logging

import (
	"context"
	"maps"

	"github.com/goliatone/go-formkit/pkg/interfaces"
)

const (
	rootModule       = "formkit"
	optionsModule    = "formkit.options"
	attributesModule = "formkit.attributes"
	mutationModule   = "formkit.mutation"
	serverModule     = "formkit.server"
	storeModule      = "formkit.store"
)

// ModuleLogger returns a logger for module with a "module" field attached.
// A nil provider yields a no-op logger.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

func OptionsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, optionsModule)
}

func AttributesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, attributesModule)
}

func MutationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, mutationModule)
}

func ServerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, serverModule)
}

func StoreLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storeModule)
}

// WithFields attaches fields when logger supports them and returns logger
// unchanged otherwise.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}
	return logger
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }

func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }

// ProviderFunc adapts a function into a LoggerProvider.
type ProviderFunc func(name string) interfaces.Logger

func (f ProviderFunc) GetLogger(name string) interfaces.Logger {
	if f == nil {
		return NoOp()
	}
	return f(name)
}
