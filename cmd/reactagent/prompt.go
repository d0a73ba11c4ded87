package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leofalp/reactagent/patterns/react"
)

func newPromptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Print the ReAct system prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), react.Prompt)
			return err
		},
	}
}
