// Command reactagent talks to an OpenAI-compatible chat API through a
// stateful conversational agent.
//
//	reactagent ask                       # sends "Hello, who are you?"
//	reactagent ask --react "Question: How much does a Bulldog weigh?"
//	reactagent chat --system "Answer in one sentence."
//	reactagent prompt                    # prints the ReAct system prompt
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
