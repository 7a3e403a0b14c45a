package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-methodlib/pkg/interfaces"
)

const (
	rootModule     = "methods"
	editorModule   = "methods.editor"
	libraryModule  = "methods.library"
	draftsModule   = "methods.drafts"
	jobsModule     = "methods.jobs"
	httpModule     = "methods.http"
	markdownModule = "methods.markdown"
)

const (
	fieldSession = "session_id"
	fieldMethod  = "method_id"
	fieldPath    = "markdown_path"
	fieldAction  = "action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
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

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// EditorLogger returns the logger for editor sessions.
func EditorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, editorModule)
}

// LibraryLogger returns the logger for the method store.
func LibraryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, libraryModule)
}

// DraftsLogger returns the logger for snapshot stores.
func DraftsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, draftsModule)
}

// JobsLogger returns the logger for background workers.
func JobsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, jobsModule)
}

// HTTPLogger returns the logger for the JSON API.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// MarkdownLogger returns the logger for markdown import.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// WithSession enriches the logger with the editor session and method ids.
// Empty values are ignored.
func WithSession(logger interfaces.Logger, sessionID, methodID string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(sessionID); trimmed != "" {
		fields[fieldSession] = trimmed
	}
	if trimmed := strings.TrimSpace(methodID); trimmed != "" {
		fields[fieldMethod] = trimmed
	}
	return WithFields(logger, fields)
}

// WithMarkdownContext enriches the logger with an import file path and action.
func WithMarkdownContext(logger interfaces.Logger, path, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldPath] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldAction] = trimmed
	}
	return WithFields(logger, fields)
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

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
