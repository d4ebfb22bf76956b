package translator

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

type eventKind int

const (
	eventMapKey eventKind = iota
	eventString
)

// pathEvent is one tokenizer observation: a key or string value together with
// the dotted key-path of its container, array elements contributing "item"
// (so a field's type value sits at "response.item.type").
type pathEvent struct {
	prefix string
	kind   eventKind
	value  string
}

// errScanStopped signals that the event handler asked to stop; it never
// escapes the package.
var errScanStopped = errors.New("scan stopped by handler")

type containerFrame struct {
	object    bool
	key       string
	expectKey bool
}

// docScanner is an incremental path-tracking tokenizer. It reads tokens one at
// a time from the decoder, so it makes progress on partial documents and keeps
// every event reported before a malformed tail.
type docScanner struct {
	dec      *json.Decoder
	stack    []containerFrame
	sawToken bool
}

func newDocScanner(r io.Reader) *docScanner {
	return &docScanner{dec: json.NewDecoder(r)}
}

// scan walks the token stream and reports key and string-value events to the
// handler. The handler returns false to stop early, which is not an error to
// the caller above. A nil return means the document tokenized to a clean end;
// anything else means the input ran out or went syntactically bad mid-way.
func (s *docScanner) scan(handle func(pathEvent) bool) error {
	for {
		token, err := s.dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(s.stack) == 0 && s.sawToken {
					return nil
				}
				return io.ErrUnexpectedEOF
			}
			return err
		}
		s.sawToken = true

		switch value := token.(type) {
		case json.Delim:
			switch value {
			case '{':
				s.stack = append(s.stack, containerFrame{object: true, expectKey: true})
			case '[':
				s.stack = append(s.stack, containerFrame{})
			case '}', ']':
				s.stack = s.stack[:len(s.stack)-1]
				s.finishValue()
			}
		case string:
			if top := s.top(); top != nil && top.object && top.expectKey {
				if !handle(pathEvent{prefix: s.containerPrefix(), kind: eventMapKey, value: value}) {
					return errScanStopped
				}
				top.key = value
				top.expectKey = false
				continue
			}
			if !handle(pathEvent{prefix: s.valuePrefix(), kind: eventString, value: value}) {
				return errScanStopped
			}
			s.finishValue()
		default:
			// Numbers, booleans and nulls only advance the path state; the
			// field accumulator ignores non-string content.
			s.finishValue()
		}
	}
}

func (s *docScanner) top() *containerFrame {
	if len(s.stack) == 0 {
		return nil
	}

	return &s.stack[len(s.stack)-1]
}

// finishValue closes out the value just read: an enclosing object forgets its
// pending key and expects the next one.
func (s *docScanner) finishValue() {
	top := s.top()
	if top == nil || !top.object {
		return
	}

	top.key = ""
	top.expectKey = true
}

// containerPrefix is the path of the innermost container itself, used for
// map_key events.
func (s *docScanner) containerPrefix() string {
	return joinPath(s.stack[:len(s.stack)-1])
}

// valuePrefix is the path of the scalar currently being read.
func (s *docScanner) valuePrefix() string {
	return joinPath(s.stack)
}

func joinPath(frames []containerFrame) string {
	parts := make([]string, 0, len(frames))
	for i := range frames {
		if frames[i].object {
			parts = append(parts, frames[i].key)
		} else {
			parts = append(parts, "item")
		}
	}

	return strings.Join(parts, ".")
}
