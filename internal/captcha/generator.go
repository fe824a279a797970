// Package captcha generates image challenges: a short random code rendered
// as a bitmap, together with the decoy options shown to the user.
package captcha

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/set-night/gatekeeper/internal/config"
	"github.com/set-night/gatekeeper/internal/domain"
)

// Captcha is one generated challenge ready to be published: the rendered
// image, the correct answer and the shuffled option set.
type Captcha struct {
	Image   []byte
	Answer  string
	Options []string
}

// Generator produces captchas. It has no state beyond the renderer and no
// side effects beyond randomness.
type Generator struct {
	renderer Renderer
}

func NewGenerator(r Renderer) *Generator {
	return &Generator{renderer: r}
}

// Generate draws a fresh answer, renders it and builds the option set:
// the answer plus three unique decoys in random presentation order.
func (g *Generator) Generate() (*Captcha, error) {
	answer := randomCode()

	image, err := g.renderer.Render(answer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRender, err)
	}

	options := make([]string, 0, config.OptionCount)
	options = append(options, answer)
	for len(options) < config.OptionCount {
		decoy := randomCode()
		if !slices.Contains(options, decoy) {
			options = append(options, decoy)
		}
	}
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return &Captcha{Image: image, Answer: answer, Options: options}, nil
}

func randomCode() string {
	b := make([]byte, config.AnswerLength)
	for i := range b {
		b[i] = config.AnswerAlphabet[rand.IntN(len(config.AnswerAlphabet))]
	}
	return string(b)
}
