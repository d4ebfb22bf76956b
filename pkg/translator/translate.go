package translator

import (
	"context"
	"fmt"

	"postwire/pkg/post"
	"postwire/pkg/stream"
)

// Hooks are the caller-supplied callbacks for one translation. All three are
// optional; each invocation is independent, so there is no registry to manage.
type Hooks struct {
	// OnField observes every routed field exactly once, after the post
	// mutation. It also receives the final synthetic "from->to" routing
	// event when a send_to field was seen.
	OnField func(fieldType string, content string)

	// EarlyStop, when it returns true for a field, stops consumption. The
	// upstream fragment source is closed, not merely ignored.
	EarlyStop func(fieldType string, content string) bool

	// Validate inspects the finished post; a non-nil error fails the call.
	Validate func(p *post.Post) error
}

// ToPost drives the streaming parser over the fragment source and assembles a
// post for the given sender. Fields arrive in source-array order: message and
// send_to overwrite (last one wins), every other type appends an attachment.
// Truncated input yields a partial post rather than an error.
func (t *Translator) ToPost(ctx context.Context, src stream.Fragments, sendFrom string, hooks Hooks) (*post.Post, error) {
	p := post.New(sendFrom)

	for field := range t.Fields(ctx, src) {
		route(p, field)
		t.log.Debug("Routed field", "type", field.Type, "content_length", len(field.Content))

		if hooks.OnField != nil {
			hooks.OnField(field.Type, field.Content)
		}
		if hooks.EarlyStop != nil && hooks.EarlyStop(field.Type, field.Content) {
			t.log.Info("Field consumption stopped early", "type", field.Type)
			break
		}
	}

	if p.SendTo != "" && hooks.OnField != nil {
		hooks.OnField(fmt.Sprintf("%s->%s", p.SendFrom, p.SendTo), p.Message)
	}

	if hooks.Validate != nil {
		if err := hooks.Validate(p); err != nil {
			return nil, fmt.Errorf("validate post: %w", err)
		}
	}

	return p, nil
}

// ToPostFromText is the eager variant for callers that already hold the whole
// model output as one string.
func (t *Translator) ToPostFromText(ctx context.Context, text string, sendFrom string, hooks Hooks) (*post.Post, error) {
	return t.ToPost(ctx, stream.FromString(text), sendFrom, hooks)
}
