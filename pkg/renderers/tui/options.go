package tui

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme holds message prefixes the renderer prepends to prompts and notices.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithPageSize limits how many options a select prompt shows at once.
func WithPageSize(size int) Option {
	return func(r *Renderer) {
		if size > 0 {
			r.pageSize = size
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
