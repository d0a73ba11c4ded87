package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leofalp/reactagent/internal/utils"
)

const chatLongDesc string = `Start a line-oriented conversation. Each line you type is sent as one user
turn and the whole conversation so far goes with it.

Commands:
  /history   print the transcript
  /usage     print cumulative token usage
  /exit      quit (also /quit or end of input)

A failed request is reported and the conversation continues unchanged.`

func newChatCmd(a *app) *cobra.Command {
	prompt := &promptFlags{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation",
		Long:  chatLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.newSession(cmd, prompt.systemPrompt())
			if err != nil {
				return err
			}
			defer s.Close(cmd.Context())

			return runChat(cmd, s)
		},
	}

	prompt.register(cmd)

	return cmd
}

func runChat(cmd *cobra.Command, s *session) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	fmt.Fprintf(errOut, "Chatting with %s. Type /exit to quit.\n", s.agent.Model())

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Fprint(errOut, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(errOut)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/exit", "/quit":
			return nil
		case "/history":
			if err := printHistory(cmd, s, out); err != nil {
				return err
			}
			continue
		case "/usage":
			usage := s.agent.Usage()
			fmt.Fprintf(out, "prompt=%d completion=%d total=%d\n",
				usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
			continue
		}

		reply, err := s.agent.Invoke(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			fmt.Fprintf(errOut, "Error: %v\n", err)
			continue
		}
		if err := s.render.Reply(reply); err != nil {
			return err
		}
	}
}

const historyPreviewLen = 200

func printHistory(cmd *cobra.Command, s *session, out io.Writer) error {
	transcript, err := s.agent.Transcript(cmd.Context())
	if err != nil {
		return err
	}
	if len(transcript) == 0 {
		fmt.Fprintln(out, "(empty)")
		return nil
	}
	for i, m := range transcript {
		content := strings.ReplaceAll(m.Content, "\n", " ")
		fmt.Fprintf(out, "%3d %-9s %s\n", i, m.Role, utils.TruncateString(content, historyPreviewLen))
	}
	return nil
}
