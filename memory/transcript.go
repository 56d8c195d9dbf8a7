package memory

// Transcript is an append-only conversation history. It is not safe for
// concurrent use; the conversation loop is its only writer.
type Transcript struct {
	msgs []Message
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append adds messages in order.
func (t *Transcript) Append(msgs ...Message) {
	for _, m := range msgs {
		t.msgs = append(t.msgs, clone(m))
	}
}

// Len returns the number of messages.
func (t *Transcript) Len() int { return len(t.msgs) }

// Messages returns a copy of the history, oldest first.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.msgs))
	for i, m := range t.msgs {
		out[i] = clone(m)
	}
	return out
}

// Last returns the newest message.
func (t *Transcript) Last() (Message, bool) {
	if len(t.msgs) == 0 {
		return Message{}, false
	}
	return clone(t.msgs[len(t.msgs)-1]), true
}

func clone(m Message) Message {
	if m.ToolCalls == nil {
		return m
	}
	calls := make([]ToolCall, len(m.ToolCalls))
	for i, c := range m.ToolCalls {
		c.Arguments = append([]byte(nil), c.Arguments...)
		calls[i] = c
	}
	m.ToolCalls = calls
	return m
}
