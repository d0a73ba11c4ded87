// Package react seeds an [agent.Agent] with the ReAct (Reasoning + Acting)
// system prompt. The prompt asks the model to answer in a loop of Thought,
// Action, PAUSE and Observation lines ending in an Answer.
//
// Only the prompt is provided. Nothing here parses "Action:" lines or runs
// the named actions: a caller that wants the loop reads each reply, performs
// the action itself and sends the result back with
// [agent.Agent.Invoke] as "Observation: ...".
package react
