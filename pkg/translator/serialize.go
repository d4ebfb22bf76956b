package translator

import (
	"fmt"

	json "github.com/goccy/go-json"

	"postwire/pkg/post"
)

type wireDocument struct {
	Response []Field `json:"response"`
}

type serializeConfig struct {
	formatter      func(post.Attachment) string
	includeMessage bool
	includeSendTo  bool
	ignoreTypes    map[string]struct{}
}

// SerializeOption adjusts how a post is rendered to wire text.
type SerializeOption func(*serializeConfig)

// WithContentFormatter replaces the default identity formatting of attachment
// content.
func WithContentFormatter(format func(post.Attachment) string) SerializeOption {
	return func(cfg *serializeConfig) {
		cfg.formatter = format
	}
}

// WithoutMessage omits the trailing message field.
func WithoutMessage() SerializeOption {
	return func(cfg *serializeConfig) {
		cfg.includeMessage = false
	}
}

// WithoutSendTo omits the send_to field.
func WithoutSendTo() SerializeOption {
	return func(cfg *serializeConfig) {
		cfg.includeSendTo = false
	}
}

// WithIgnoredTypes drops attachments of the given types from the output.
func WithIgnoredTypes(types ...string) SerializeOption {
	return func(cfg *serializeConfig) {
		if cfg.ignoreTypes == nil {
			cfg.ignoreTypes = make(map[string]struct{}, len(types))
		}
		for _, attachmentType := range types {
			cfg.ignoreTypes[attachmentType] = struct{}{}
		}
	}
}

// Serialize renders a post into the canonical wire document: non-ignored
// attachments in their existing order, then send_to, then message. The result
// is what the model is shown as an example of its own expected output, so the
// shape must stay in lockstep with what Fields parses.
func (t *Translator) Serialize(p *post.Post, opts ...SerializeOption) (string, error) {
	cfg := serializeConfig{
		formatter:      func(a post.Attachment) string { return a.Content },
		includeMessage: true,
		includeSendTo:  true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	fields := make([]Field, 0, len(p.Attachments)+2)
	for _, attachment := range p.Attachments {
		if _, skip := cfg.ignoreTypes[attachment.Type]; skip {
			continue
		}
		fields = append(fields, Field{Type: attachment.Type, Content: cfg.formatter(attachment)})
	}
	if cfg.includeSendTo {
		fields = append(fields, Field{Type: "send_to", Content: p.SendTo})
	}
	if cfg.includeMessage {
		fields = append(fields, Field{Type: "message", Content: p.Message})
	}

	text, err := json.Marshal(wireDocument{Response: fields})
	if err != nil {
		return "", fmt.Errorf("serialize post: %w", err)
	}

	return string(text), nil
}
