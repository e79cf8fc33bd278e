package telemetry

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// EstimateTokenMetrics counts tokens in a prompt/completion pair using
// the tokenizer for the given model and returns a metrics map suitable
// for UpdateParams.Metrics. Unknown models fall back to cl100k_base.
func EstimateTokenMetrics(model, prompt, completion string) (map[string]float64, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, fmt.Errorf("get tokenizer: %w", err)
		}
	}

	promptTokens := len(enc.Encode(prompt, nil, nil))
	completionTokens := len(enc.Encode(completion, nil, nil))

	return map[string]float64{
		"prompt_tokens":     float64(promptTokens),
		"completion_tokens": float64(completionTokens),
		"total_tokens":      float64(promptTokens + completionTokens),
	}, nil
}
