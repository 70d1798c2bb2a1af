package katcp

import "testing"

func TestMessageRoundTrip(t *testing.T) {
	cases := []Message{
		NewRequest("dig-noise-source", "1234567890.5", "0.5", "20"),
		NewReply("dig-noise-source", StatusOK, "1234567890.5", "0.5", "20"),
		NewInform("log", "noise diode armed"),
		NewRequest("ping"),
		NewReply("sensor-value", StatusOK, ""),
	}
	for _, msg := range cases {
		got, err := Parse(msg.String() + "\n")
		if err != nil {
			t.Fatalf("Parse(%q): %v", msg.String(), err)
		}
		if got.Type != msg.Type || got.Name != msg.Name {
			t.Errorf("round trip changed header: %+v vs %+v", got, msg)
		}
		if len(got.Arguments) != len(msg.Arguments) {
			t.Fatalf("argument count %d, want %d for %q", len(got.Arguments), len(msg.Arguments), msg.String())
		}
		for i := range msg.Arguments {
			if got.Arguments[i] != msg.Arguments[i] {
				t.Errorf("argument %d = %q, want %q", i, got.Arguments[i], msg.Arguments[i])
			}
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, line := range []string{"", "\n", "dig-noise-source ok", "% nope", "?", "?name bad\\escape\\q"} {
		if _, err := Parse(line); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", line)
		}
	}
}

func TestEscapedArguments(t *testing.T) {
	msg := NewInform("log", "two words", "tab\there")
	line := msg.String()
	got, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse(%q): %v", line, err)
	}
	if got.Arguments[0] != "two words" || got.Arguments[1] != "tab\there" {
		t.Errorf("unescape mismatch: %q", got.Arguments)
	}
}

func TestReplyOK(t *testing.T) {
	if !NewReply("x", StatusOK).OK() {
		t.Error("ok reply not recognised")
	}
	if NewReply("x", StatusFail).OK() {
		t.Error("fail reply reported ok")
	}
	if NewRequest("x", StatusOK).OK() {
		t.Error("request reported ok")
	}
}
