package consolidate

import (
	"github.com/pkoukk/tiktoken-go"
)

const tokenEncoding = "cl100k_base"

// EstimateTokens approximates how many LLM tokens the artifact text costs.
// The figure is informational; callers treat an error as a diagnostic, never
// a run failure.
func EstimateTokens(text string) (int, error) {
	encoding, err := tiktoken.GetEncoding(tokenEncoding)
	if err != nil {
		return 0, err
	}
	return len(encoding.Encode(text, nil, nil)), nil
}
