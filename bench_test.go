package tomltree_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/creachadair/tomltree"
	"github.com/creachadair/tomltree/ast"
	"github.com/creachadair/tomltree/internal/testutil"
)

// benchInput returns a document consisting of many copies of the sample, each
// under its own table so that the keys do not collide.
func benchInput() string {
	var sb strings.Builder
	for i := range 50 {
		prefix := fmt.Sprintf("doc%d", i)
		fmt.Fprintf(&sb, "[%s]\n", prefix)
		r := strings.NewReplacer("\n[[", "\n[["+prefix+".", "\n[", "\n["+prefix+".")
		sb.WriteString(r.Replace(testutil.Sample))
	}
	return sb.String()
}

func BenchmarkParse(b *testing.B) {
	input := []byte(benchInput())
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		for b.Loop() {
			var v map[string]any
			if _, err := toml.Decode(string(input), &v); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Stream", func(b *testing.B) {
		for b.Loop() {
			if err := tomltree.NewStream(input).Parse(nopHandler{}); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Parser", func(b *testing.B) {
		for b.Loop() {
			if _, err := ast.ParseBytes(input); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}

type nopHandler struct{}

func (nopHandler) Header(tomltree.Anchor, tomltree.Key, bool) error { return nil }
func (nopHandler) BeginMember(tomltree.Anchor, tomltree.Key) error  { return nil }
func (nopHandler) EndMember(tomltree.Anchor) error                  { return nil }
func (nopHandler) BeginArray(tomltree.Anchor) error                 { return nil }
func (nopHandler) EndArray(tomltree.Anchor) error                   { return nil }
func (nopHandler) BeginInline(tomltree.Anchor) error                { return nil }
func (nopHandler) EndInline(tomltree.Anchor) error                  { return nil }
func (nopHandler) Value(tomltree.Anchor) error                      { return nil }
func (nopHandler) EndOfInput(tomltree.Anchor)                       {}
