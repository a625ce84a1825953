package anthropic

// Model name constants for the Messages API
const (
	ModelSonnet4 = "claude-sonnet-4-20250514"
	ModelOpus4   = "claude-opus-4-20250514"
	ModelHaiku35 = "claude-3-5-haiku-latest"
)

// DefaultModel returns the default Anthropic model
func DefaultModel() string {
	return ModelSonnet4
}
