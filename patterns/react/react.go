package react

import (
	"github.com/leofalp/reactagent/core/agent"
	"github.com/leofalp/reactagent/providers/ai"
)

// Actions lists the action names documented in [Prompt].
var Actions = []string{"calculate", "average_dog_weight"}

// NewAgent builds an agent whose transcript starts with [Prompt] as the
// system turn. opts are applied after the prompt, so every other option
// behaves as with [agent.New].
func NewAgent(provider ai.Provider, opts ...agent.Option) (*agent.Agent, error) {
	return agent.New(provider, append([]agent.Option{agent.WithSystemPrompt(Prompt)}, opts...)...)
}
