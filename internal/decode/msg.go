package decode

import (
	"fmt"
	"strconv"
	"strings"
)

// Message is one record of a message table.
type Message struct {
	ID    int    `json:"id"`
	Audio string `json:"audio,omitempty"`
	Text  string `json:"text"`
}

// Msg is a decoded message table.
type Msg struct {
	Messages []Message `json:"messages"`
}

// NewMsg decodes a message table: `{id}{audio}{text}` records in
// Windows-1252. Anything outside braces is commentary and skipped. Line
// breaks inside a field are dropped.
func NewMsg(r Reader) (*Msg, error) {
	text, err := readText(r)
	if err != nil {
		return nil, err
	}

	fields, err := braceFields(text)
	if err != nil {
		return nil, err
	}
	if len(fields)%3 != 0 {
		return nil, fmt.Errorf("%w: %d fields do not form whole records", ErrFormat, len(fields))
	}

	msg := &Msg{Messages: make([]Message, 0, len(fields)/3)}
	for i := 0; i < len(fields); i += 3 {
		id, err := strconv.Atoi(strings.TrimSpace(fields[i]))
		if err != nil {
			return nil, fmt.Errorf("%w: message id %q", ErrFormat, fields[i])
		}
		msg.Messages = append(msg.Messages, Message{
			ID:    id,
			Audio: fields[i+1],
			Text:  fields[i+2],
		})
	}
	return msg, nil
}

// Lookup returns the text of message id.
func (m *Msg) Lookup(id int) (string, bool) {
	for _, msg := range m.Messages {
		if msg.ID == id {
			return msg.Text, true
		}
	}
	return "", false
}

func braceFields(text string) ([]string, error) {
	var fields []string
	var cur strings.Builder
	open := false

	for _, c := range text {
		switch {
		case c == '{' && !open:
			open = true
			cur.Reset()
		case c == '{':
			return nil, fmt.Errorf("%w: nested '{' in field %d", ErrFormat, len(fields))
		case c == '}' && open:
			open = false
			fields = append(fields, cur.String())
		case !open:
		case c == '\r' || c == '\n':
		default:
			cur.WriteRune(c)
		}
	}
	if open {
		return nil, fmt.Errorf("%w: unterminated field %d", ErrFormat, len(fields))
	}
	return fields, nil
}
