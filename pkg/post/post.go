// Package post holds the message data model shared by the translator and its
// callers: a Post is one participant's turn, carrying an optional text message,
// an optional routing target, and an ordered list of typed attachments.
package post

import (
	"fmt"

	"github.com/google/uuid"
)

// Attachment is a typed side-channel payload on a Post, distinct from the
// primary message text (e.g. code, a reasoning trace, an execution result).
type Attachment struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

// NewAttachment creates an attachment with a fresh id.
func NewAttachment(attachmentType string, content string) Attachment {
	return Attachment{
		ID:      fmt.Sprintf("atta-%s", uuid.NewString()),
		Type:    attachmentType,
		Content: content,
	}
}

func (a Attachment) String() string {
	return fmt.Sprintf("%s: %s", a.Type, a.Content)
}

// Post is a structured message in a conversation round. Message and SendTo use
// the empty string for "unset"; Attachments preserve insertion order and are
// never deduplicated.
type Post struct {
	ID          string       `json:"id"`
	Message     string       `json:"message,omitempty"`
	SendFrom    string       `json:"send_from"`
	SendTo      string       `json:"send_to,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// New creates an empty post originating from the given sender.
func New(sendFrom string) *Post {
	return &Post{
		ID:       fmt.Sprintf("post-%s", uuid.NewString()),
		SendFrom: sendFrom,
	}
}

// AddAttachment appends an attachment, preserving order.
func (p *Post) AddAttachment(attachment Attachment) {
	p.Attachments = append(p.Attachments, attachment)
}

// Copy returns a shallow post copy with its own attachment slice, so the
// original can keep mutating without aliasing the returned value.
func (p *Post) Copy() *Post {
	clone := *p
	if len(p.Attachments) > 0 {
		clone.Attachments = make([]Attachment, len(p.Attachments))
		copy(clone.Attachments, p.Attachments)
	}

	return &clone
}
