package translator

import (
	"context"
	"errors"
	"fmt"
	"iter"

	json "github.com/goccy/go-json"

	"postwire/pkg/stream"
)

// ErrMalformedResponse reports a full-document parse whose top level is
// missing the response array (or carries a non-array under that key).
var ErrMalformedResponse = errors.New("model response is missing a response array")

type slotState int

const (
	slotEmpty slotState = iota
	slotPending
	slotFilled
)

// fieldAccumulator rebuilds one field at a time from path events. Seeing a
// "type" or "content" key marks that slot pending, the matching string value
// fills it, and the field is emitted only once both slots are filled. A
// repeated key re-opens its slot, and non-string content never fills one.
type fieldAccumulator struct {
	typeState    slotState
	typeValue    string
	contentState slotState
	contentValue string
}

func (a *fieldAccumulator) apply(ev pathEvent) (Field, bool) {
	switch {
	case ev.kind == eventMapKey && ev.prefix == "response.item" && ev.value == "type":
		a.typeState = slotPending
	case ev.kind == eventString && ev.prefix == "response.item.type":
		a.typeState = slotFilled
		a.typeValue = ev.value
	case ev.kind == eventMapKey && ev.prefix == "response.item" && ev.value == "content":
		a.contentState = slotPending
	case ev.kind == eventString && ev.prefix == "response.item.content":
		a.contentState = slotFilled
		a.contentValue = ev.value
	}

	if a.typeState == slotFilled && a.contentState == slotFilled {
		field := Field{Type: a.typeValue, Content: a.contentValue}
		*a = fieldAccumulator{}

		return field, true
	}

	return Field{}, false
}

// Fields incrementally parses the fragment source and yields each field the
// moment its closing content value is tokenized, in exact array order.
//
// Breaking out of the range closes the source, so an upstream producer (a live
// model stream) stops being consumed. Malformed or truncated input ends the
// sequence after every already-completed field and is logged as a warning; no
// error reaches the consumer.
func (t *Translator) Fields(ctx context.Context, src stream.Fragments) iter.Seq[Field] {
	return func(yield func(Field) bool) {
		defer func() { _ = src.Close() }()

		scanner := newDocScanner(stream.NewReader(ctx, src))
		var acc fieldAccumulator
		completed := 0

		err := scanner.scan(func(ev pathEvent) bool {
			field, done := acc.apply(ev)
			if !done {
				return true
			}
			completed++

			return yield(field)
		})
		if err != nil && !errors.Is(err, errScanStopped) {
			t.log.Warn("Model output stream ended before the document completed", "fields_completed", completed, "error", err)
		}
	}
}

// ParseDocument parses a fully materialized document and returns its fields.
// Unlike Fields, shape problems here are hard failures: a missing or non-array
// response key reports ErrMalformedResponse.
func (t *Translator) ParseDocument(text string) ([]Field, error) {
	var document map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &document); err != nil {
		t.log.Error("Failed to parse model output", "error", err, "output_length", len(text))
		return nil, fmt.Errorf("parse model response: %w", err)
	}

	raw, ok := document["response"]
	if !ok {
		t.log.Error("Model output has no response key", "output_length", len(text))
		return nil, ErrMalformedResponse
	}

	var fields []Field
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.log.Error("Model output response key is not a field array", "error", err)
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, err)
	}

	return fields, nil
}
