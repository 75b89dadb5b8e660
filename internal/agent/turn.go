package agent

import (
	"context"

	"tablebot/internal/intent"
	"tablebot/internal/session"
)

// Turn carries one customer input through the engine.
type Turn struct {
	Ctx     context.Context
	Input   string
	Session *session.Context

	Label intent.Label
	Reply string

	// Done is set by the step that answered the turn.
	Done bool
	// Exit asks the caller to end the conversation.
	Exit bool
}

func newTurn(ctx context.Context, input string, sess *session.Context) *Turn {
	return &Turn{Ctx: ctx, Input: input, Session: sess}
}

func (t *Turn) answer(reply string) {
	t.Reply = reply
	t.Done = true
}
