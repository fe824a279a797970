package captcha

import (
	"errors"
	"strings"
	"testing"

	"github.com/set-night/gatekeeper/internal/config"
	"github.com/set-night/gatekeeper/internal/domain"
)

type stubRenderer struct {
	err   error
	texts []string
}

func (r *stubRenderer) Render(text string) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.texts = append(r.texts, text)
	return []byte("png:" + text), nil
}

// TestGenerateOptionSetShape checks the option-set invariants over many
// draws: four options, the answer exactly once, no duplicates.
func TestGenerateOptionSetShape(t *testing.T) {
	g := NewGenerator(&stubRenderer{})

	for i := 0; i < 100; i++ {
		c, err := g.Generate()
		if err != nil {
			t.Fatalf("Generate returned error: %v", err)
		}
		if len(c.Options) != config.OptionCount {
			t.Fatalf("len(Options) = %d, want %d", len(c.Options), config.OptionCount)
		}
		seen := make(map[string]int, len(c.Options))
		for _, opt := range c.Options {
			seen[opt]++
		}
		if len(seen) != len(c.Options) {
			t.Fatalf("options contain duplicates: %v", c.Options)
		}
		if seen[c.Answer] != 1 {
			t.Fatalf("answer %q appears %d times in %v, want 1", c.Answer, seen[c.Answer], c.Options)
		}
	}
}

// TestGenerateAnswerAlphabet ensures answers and decoys use only the
// unambiguous alphabet at the configured length.
func TestGenerateAnswerAlphabet(t *testing.T) {
	g := NewGenerator(&stubRenderer{})

	for i := 0; i < 50; i++ {
		c, err := g.Generate()
		if err != nil {
			t.Fatalf("Generate returned error: %v", err)
		}
		for _, opt := range c.Options {
			if len(opt) != config.AnswerLength {
				t.Fatalf("option %q has length %d, want %d", opt, len(opt), config.AnswerLength)
			}
			for _, r := range opt {
				if !strings.ContainsRune(config.AnswerAlphabet, r) {
					t.Fatalf("option %q contains %q, outside the alphabet", opt, r)
				}
			}
		}
	}
}

// TestGenerateRendersTheAnswer ensures the image bytes come from rendering
// the correct answer, not a decoy.
func TestGenerateRendersTheAnswer(t *testing.T) {
	r := &stubRenderer{}
	g := NewGenerator(r)

	c, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(r.texts) != 1 || r.texts[0] != c.Answer {
		t.Fatalf("rendered texts = %v, want exactly [%q]", r.texts, c.Answer)
	}
	if string(c.Image) != "png:"+c.Answer {
		t.Fatalf("Image = %q, want renderer output for the answer", c.Image)
	}
}

// TestGenerateWrapsRenderError ensures rendering failures surface as
// ErrRender.
func TestGenerateWrapsRenderError(t *testing.T) {
	g := NewGenerator(&stubRenderer{err: errors.New("font missing")})

	_, err := g.Generate()
	if !errors.Is(err, domain.ErrRender) {
		t.Fatalf("Generate error = %v, want %v", err, domain.ErrRender)
	}
}
