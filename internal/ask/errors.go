package ask

import (
	"github.com/connorhough/qq/internal/llm"
)

// Explain turns an error from Run into the one-line message shown to the
// user.
func Explain(err error) string {
	switch llm.KindOf(err) {
	case llm.KindNetwork:
		return "Sorry, I can't answer that without an active internet connection"
	case llm.KindRateLimit, llm.KindQuotaExceeded:
		return "Looks like you ran out of tokens, time to pay up."
	case llm.KindAuthentication:
		return "Authentication failed. Check your API key configuration."
	}
	if llm.IsNetworkError(err) {
		return "Sorry, I can't answer that without an active internet connection"
	}
	return "Something went wrong: " + err.Error()
}
