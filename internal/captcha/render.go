package captcha

import (
	"bytes"
	"fmt"
	"image/png"
	"math/rand/v2"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/set-night/gatekeeper/internal/config"
)

// Renderer turns an answer string into raster image bytes.
type Renderer interface {
	Render(text string) ([]byte, error)
}

// ImageRenderer draws the code on a fixed-size canvas with the embedded
// Go Regular face, plus a few noise strokes so the code cannot be read
// back trivially from the raw pixels.
type ImageRenderer struct {
	face font.Face
}

func NewImageRenderer() (*ImageRenderer, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse embedded font: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{Size: config.CaptchaFontSize})
	return &ImageRenderer{face: face}, nil
}

func (r *ImageRenderer) Render(text string) ([]byte, error) {
	dc := gg.NewContext(config.CaptchaWidth, config.CaptchaHeight)
	dc.SetHexColor("#F0F0F0")
	dc.Clear()

	dc.SetLineWidth(1)
	for i := 0; i < 6; i++ {
		dc.SetRGBA(0.55, 0.55, 0.55, 0.6)
		dc.DrawLine(
			rand.Float64()*config.CaptchaWidth, rand.Float64()*config.CaptchaHeight,
			rand.Float64()*config.CaptchaWidth, rand.Float64()*config.CaptchaHeight,
		)
		dc.Stroke()
	}

	dc.SetFontFace(r.face)
	dc.SetHexColor("#333333")
	dc.DrawStringAnchored(text, config.CaptchaWidth/2, config.CaptchaHeight/2, 0.5, 0.5)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("encode captcha png: %w", err)
	}
	return buf.Bytes(), nil
}
