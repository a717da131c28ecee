package generator

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterLLM builds an OpenAILLM against the OpenRouter endpoint,
// which speaks the OpenAI chat completions protocol. BaseURL can still be
// overridden for gateways.
func NewOpenRouterLLM(cfg Settings) (*OpenAILLM, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = openRouterBaseURL
	}
	return NewOpenAILLM(cfg)
}
