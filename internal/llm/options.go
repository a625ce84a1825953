package llm

// DefaultMaxTokens caps answer length when neither config nor flags set it.
const DefaultMaxTokens = 300

// Option configures provider behavior
type Option func(*GenerateOptions)

// GenerateOptions holds configuration for Generate calls
type GenerateOptions struct {
	Model        string
	SystemPrompt string
	MaxTokens    int
}

// WithModel overrides the model for this generation
func WithModel(model string) Option {
	return func(opts *GenerateOptions) {
		opts.Model = model
	}
}

// WithSystemPrompt sets the system instruction sent alongside the prompt
func WithSystemPrompt(prompt string) Option {
	return func(opts *GenerateOptions) {
		opts.SystemPrompt = prompt
	}
}

// WithMaxTokens limits the length of the generated answer. Values <= 0 are ignored.
func WithMaxTokens(n int) Option {
	return func(opts *GenerateOptions) {
		if n > 0 {
			opts.MaxTokens = n
		}
	}
}

// BuildOptions constructs GenerateOptions from Option functions
// Exported for use by provider implementations
func BuildOptions(opts []Option) *GenerateOptions {
	options := &GenerateOptions{MaxTokens: DefaultMaxTokens}
	for _, opt := range opts {
		opt(options)
	}
	return options
}
