package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/leofalp/reactagent/patterns/react"
)

// DefaultGreeting is sent by ask when no message is given.
const DefaultGreeting = "Hello, who are you?"

const askLongDesc string = `Send one message and print the reply.

Without a message the greeting "Hello, who are you?" is sent with no system
prompt. --react seeds the conversation with the ReAct prompt; --system with a
prompt of your own.

Examples:
  reactagent ask
  reactagent ask "What is the capital of France?"
  reactagent ask --react "Question: How much does a toy poodle weigh?"`

// promptFlags selects the system prompt for ask and chat.
type promptFlags struct {
	react  bool
	system string
}

func (p *promptFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&p.react, "react", false, "Seed the conversation with the ReAct system prompt")
	cmd.Flags().StringVar(&p.system, "system", "", "Seed the conversation with a custom system prompt")
	cmd.MarkFlagsMutuallyExclusive("react", "system")
}

func (p *promptFlags) systemPrompt() string {
	if p.react {
		return react.Prompt
	}
	return p.system
}

func newAskCmd(a *app) *cobra.Command {
	prompt := &promptFlags{}

	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Send one message and print the reply",
		Long:  askLongDesc,
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.TrimSpace(strings.Join(args, " "))
			if message == "" {
				message = DefaultGreeting
			}

			s, err := a.newSession(cmd, prompt.systemPrompt())
			if err != nil {
				return err
			}
			defer s.Close(cmd.Context())

			reply, err := s.agent.Invoke(cmd.Context(), message)
			if err != nil {
				return err
			}
			return s.render.Reply(reply)
		},
	}

	prompt.register(cmd)

	return cmd
}
