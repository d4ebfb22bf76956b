package post

import (
	"strings"
	"testing"
)

func TestNewPostHasIdentity(t *testing.T) {
	p := New("Planner")

	if !strings.HasPrefix(p.ID, "post-") {
		t.Fatalf("id = %q, want post- prefix", p.ID)
	}
	if p.SendFrom != "Planner" {
		t.Fatalf("send_from = %q, want %q", p.SendFrom, "Planner")
	}
	if p.Message != "" || p.SendTo != "" {
		t.Fatalf("expected empty message/send_to, got %+v", p)
	}
}

func TestNewAttachment(t *testing.T) {
	a := NewAttachment("code", "print(1)")

	if !strings.HasPrefix(a.ID, "atta-") {
		t.Fatalf("id = %q, want atta- prefix", a.ID)
	}
	if a.Type != "code" || a.Content != "print(1)" {
		t.Fatalf("attachment = %+v", a)
	}

	other := NewAttachment("code", "print(1)")
	if other.ID == a.ID {
		t.Fatal("expected unique attachment ids")
	}
}

func TestAddAttachmentPreservesOrder(t *testing.T) {
	p := New("Agent")
	p.AddAttachment(NewAttachment("thought", "first"))
	p.AddAttachment(NewAttachment("code", "second"))
	p.AddAttachment(NewAttachment("thought", "third"))

	if len(p.Attachments) != 3 {
		t.Fatalf("attachment count = %d, want 3", len(p.Attachments))
	}
	for i, want := range []string{"first", "second", "third"} {
		if p.Attachments[i].Content != want {
			t.Fatalf("attachment[%d].content = %q, want %q", i, p.Attachments[i].Content, want)
		}
	}
}

func TestCopyDetachesAttachmentList(t *testing.T) {
	p := New("Agent")
	p.AddAttachment(NewAttachment("code", "x"))

	clone := p.Copy()
	p.AddAttachment(NewAttachment("code", "y"))

	if len(clone.Attachments) != 1 {
		t.Fatalf("clone attachment count = %d, want 1", len(clone.Attachments))
	}
	if clone.ID != p.ID {
		t.Fatalf("clone id = %q, want %q", clone.ID, p.ID)
	}
}
