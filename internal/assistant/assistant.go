// Package assistant answers analyst questions by sending a summary of the current tab's data
// and the question to a chat completion model.
package assistant

import (
	"context"
	"fmt"

	"mdip/internal/session"
	"mdip/internal/tabular"

	"github.com/rs/zerolog/log"
)

// Assistant is the per-domain expert chat.
type Assistant struct {
	completer   Completer
	contextRows int
}

// New creates an assistant that sends at most contextRows sample rows per question.
func New(completer Completer, contextRows int) *Assistant {
	if contextRows <= 0 {
		contextRows = 50
	}
	return &Assistant{completer: completer, contextRows: contextRows}
}

// Ask sends question about data to the expert for tab and records both turns in the
// session's history. Failures are returned as an "Error: ..." reply, never as an error.
func (a *Assistant) Ask(ctx context.Context, sess *session.Session, tab session.Tab, question string, data tabular.Table) string {
	dataContext := emptyContext(tab)
	if !data.Empty() {
		dataContext = PrepareContext(data, a.contextRows)
	}

	system := SystemPrompt(tab) + "\n\nCurrent Data Context:\n" + dataContext
	messages := []ChatMessage{{Role: "system", Content: system}}
	for _, m := range sess.History(tab) {
		messages = append(messages, ChatMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, ChatMessage{Role: "user", Content: question})

	sess.Append(tab, session.Message{Role: "user", Content: question})

	reply, err := a.completer.Complete(ctx, messages)
	if err != nil {
		log.Error().Err(err).Str("tab", string(tab)).Msg("Assistant request failed")
		reply = fmt.Sprintf("Error: %v\n\nPlease check your API key in .env file and ensure it's valid.", err)
	}

	sess.Append(tab, session.Message{Role: "assistant", Content: reply})
	return reply
}
