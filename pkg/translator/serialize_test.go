package translator

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"postwire/pkg/post"
)

func serializedFields(t *testing.T, wire string) []Field {
	t.Helper()

	var document wireDocument
	if err := json.Unmarshal([]byte(wire), &document); err != nil {
		t.Fatalf("unmarshal wire document: %v", err)
	}
	return document.Response
}

func TestSerializeFieldOrder(t *testing.T) {
	p := post.New("Agent")
	p.Message = "done"
	p.SendTo = "User"
	p.AddAttachment(post.NewAttachment("thought", "a"))
	p.AddAttachment(post.NewAttachment("code", "b"))

	wire, err := New(discardLogger()).Serialize(p)
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}

	fields := serializedFields(t, wire)
	want := []Field{
		{Type: "thought", Content: "a"},
		{Type: "code", Content: "b"},
		{Type: "send_to", Content: "User"},
		{Type: "message", Content: "done"},
	}
	if len(fields) != len(want) {
		t.Fatalf("field count = %d, want %d", len(fields), len(want))
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Fatalf("field[%d] = %+v, want %+v", i, fields[i], want[i])
		}
	}
}

func TestSerializeIgnoredTypes(t *testing.T) {
	p := post.New("Agent")
	p.Message = "visible"
	p.AddAttachment(post.NewAttachment("thought", "hidden"))
	p.AddAttachment(post.NewAttachment("code", "kept"))

	wire, err := New(discardLogger()).Serialize(p, WithIgnoredTypes("thought"))
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}

	if strings.Contains(wire, "hidden") {
		t.Fatalf("wire contains ignored attachment: %s", wire)
	}
	fields := serializedFields(t, wire)
	for _, field := range fields {
		if field.Type == "thought" {
			t.Fatalf("ignored type present in %+v", fields)
		}
	}
}

func TestSerializeWithoutMessageAndSendTo(t *testing.T) {
	p := post.New("Agent")
	p.Message = "secret"
	p.SendTo = "User"
	p.AddAttachment(post.NewAttachment("code", "x"))

	wire, err := New(discardLogger()).Serialize(p, WithoutMessage(), WithoutSendTo())
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}

	fields := serializedFields(t, wire)
	if len(fields) != 1 {
		t.Fatalf("field count = %d, want 1 (%+v)", len(fields), fields)
	}
	if fields[0].Type != "code" {
		t.Fatalf("field type = %q, want %q", fields[0].Type, "code")
	}
}

func TestSerializeContentFormatter(t *testing.T) {
	p := post.New("Agent")
	p.AddAttachment(post.NewAttachment("code", "print(1)"))

	wire, err := New(discardLogger()).Serialize(p,
		WithoutMessage(), WithoutSendTo(),
		WithContentFormatter(func(a post.Attachment) string {
			return "```python\n" + a.Content + "\n```"
		}),
	)
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}

	fields := serializedFields(t, wire)
	if len(fields) != 1 {
		t.Fatalf("field count = %d, want 1", len(fields))
	}
	if !strings.HasPrefix(fields[0].Content, "```python") {
		t.Fatalf("content = %q, want formatted block", fields[0].Content)
	}
}

func TestSerializeEmptyPostStillHasResponseArray(t *testing.T) {
	wire, err := New(discardLogger()).Serialize(post.New("Agent"), WithoutMessage(), WithoutSendTo())
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}

	var document map[string]any
	if err := json.Unmarshal([]byte(wire), &document); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := document["response"]; !ok {
		t.Fatalf("wire missing response key: %s", wire)
	}
}
