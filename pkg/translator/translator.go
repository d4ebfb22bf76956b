// Package translator converts between the JSON wire shape a language model is
// prompted to produce and the Post objects the rest of the runtime consumes.
// The parse direction is incremental: fields are recovered and routed as the
// document streams in, without waiting for the closing brace.
package translator

import (
	"log/slog"

	"postwire/pkg/post"
)

// Field is one completed (type, content) pair recovered from the response
// array, the atomic unit the streaming parser emits.
type Field struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Translator is the bidirectional codec. It holds only the injected diagnostic
// logger; every call is otherwise independent, so one Translator is safe to
// share across concurrent invocations.
type Translator struct {
	log *slog.Logger
}

// New creates a translator reporting diagnostics through the given logger.
func New(log *slog.Logger) *Translator {
	if log == nil {
		log = slog.Default()
	}

	return &Translator{log: log.With("component", "translator")}
}

// routes maps the well-known field types onto post mutations. Every type
// missing here falls through to an attachment, so new tags flow end to end
// without touching the parser.
var routes = map[string]func(p *post.Post, content string){
	"message": func(p *post.Post, content string) { p.Message = content },
	"send_to": func(p *post.Post, content string) { p.SendTo = content },
}

func route(p *post.Post, field Field) {
	if apply, ok := routes[field.Type]; ok {
		apply(p, field.Content)
		return
	}

	p.AddAttachment(post.NewAttachment(field.Type, field.Content))
}
