// Minimal KATCP line protocol: requests, replies, and informs exchanged
// with digitiser control endpoints as single text lines.
package katcp

import (
	"fmt"
	"strings"
)

// MessageType distinguishes the three KATCP message classes.
type MessageType byte

const (
	Request MessageType = '?'
	Reply   MessageType = '!'
	Inform  MessageType = '#'
)

// Reply status codes.
const (
	StatusOK      = "ok"
	StatusInvalid = "invalid"
	StatusFail    = "fail"
)

// Message is one KATCP line: a type marker, a name, and positional arguments.
type Message struct {
	Type      MessageType
	Name      string
	Arguments []string
}

// NewRequest builds a request message.
func NewRequest(name string, args ...string) Message {
	return Message{Type: Request, Name: name, Arguments: args}
}

// NewReply builds a reply message.
func NewReply(name string, args ...string) Message {
	return Message{Type: Reply, Name: name, Arguments: args}
}

// NewInform builds an inform message.
func NewInform(name string, args ...string) Message {
	return Message{Type: Inform, Name: name, Arguments: args}
}

// OK reports whether a reply carries the ok status in its first argument.
func (m Message) OK() bool {
	return m.Type == Reply && len(m.Arguments) > 0 && m.Arguments[0] == StatusOK
}

// String renders the message as a single protocol line without terminator.
func (m Message) String() string {
	var b strings.Builder
	b.WriteByte(byte(m.Type))
	b.WriteString(m.Name)
	for _, a := range m.Arguments {
		b.WriteByte(' ')
		b.WriteString(escape(a))
	}
	return b.String()
}

// Parse decodes a single protocol line.
func Parse(line string) (Message, error) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return Message{}, fmt.Errorf("katcp: empty line")
	}
	t := MessageType(line[0])
	switch t {
	case Request, Reply, Inform:
	default:
		return Message{}, fmt.Errorf("katcp: bad type marker %q", line[0])
	}
	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return Message{}, fmt.Errorf("katcp: missing message name in %q", line)
	}
	msg := Message{Type: t, Name: fields[0]}
	for _, f := range fields[1:] {
		arg, err := unescape(f)
		if err != nil {
			return Message{}, fmt.Errorf("katcp: %w in %q", err, line)
		}
		msg.Arguments = append(msg.Arguments, arg)
	}
	return msg, nil
}

// escape applies KATCP argument escaping so arguments never contain
// whitespace on the wire.
func escape(s string) string {
	if s == "" {
		return `\@`
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case ' ':
			b.WriteString(`\_`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func unescape(s string) (string, error) {
	if s == `\@` {
		return "", nil
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("dangling escape")
		}
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case '_':
			b.WriteByte(' ')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '0':
			b.WriteByte(0)
		case '@':
			// empty argument marker inside a longer token is a no-op
		default:
			return "", fmt.Errorf("bad escape %q", s[i-1:i+1])
		}
	}
	return b.String(), nil
}
