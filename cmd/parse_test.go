package cmd

import (
	"reflect"
	"testing"
)

func TestChunkText(t *testing.T) {
	tests := []struct {
		name string
		text string
		size int
		want []string
	}{
		{name: "zero size keeps whole", text: "abcdef", size: 0, want: []string{"abcdef"}},
		{name: "size larger than text", text: "abc", size: 10, want: []string{"abc"}},
		{name: "even split", text: "abcdef", size: 2, want: []string{"ab", "cd", "ef"}},
		{name: "uneven tail", text: "abcde", size: 2, want: []string{"ab", "cd", "e"}},
		{name: "single byte fragments", text: "abc", size: 1, want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := chunkText(tt.text, tt.size); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("chunkText(%q, %d) = %v, want %v", tt.text, tt.size, got, tt.want)
			}
		})
	}
}
