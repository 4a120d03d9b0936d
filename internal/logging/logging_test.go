package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-formkit/pkg/interfaces"
)

type recordingLogger struct {
	fields []map[string]any
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	r.fields = append(r.fields, fields)
	return r
}

func (r *recordingLogger) WithContext(context.Context) interfaces.Logger { return r }

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "formkit.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger.WithContext(context.Background()).Debug("noop")
}

func TestModuleLoggerAttachesModuleField(t *testing.T) {
	rec := &recordingLogger{}
	var requested []string
	provider := ProviderFunc(func(name string) interfaces.Logger {
		requested = append(requested, name)
		return rec
	})

	OptionsLogger(provider)

	if len(requested) != 1 || requested[0] != optionsModule {
		t.Fatalf("unexpected provider calls: %#v", requested)
	}
	if len(rec.fields) != 1 || rec.fields[0]["module"] != optionsModule {
		t.Fatalf("expected module field, got %#v", rec.fields)
	}
}

func TestWithFieldsCopiesInput(t *testing.T) {
	rec := &recordingLogger{}
	fields := map[string]any{"site": "attribute.clear"}
	WithFields(rec, fields)
	fields["site"] = "changed"

	if rec.fields[0]["site"] != "attribute.clear" {
		t.Fatalf("expected fields to be copied, got %#v", rec.fields[0])
	}
}
