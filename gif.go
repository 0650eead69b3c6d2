package afrah

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
)

// Filter adjusts a composed frame before it is resized. The CLI uses this to
// hook in brightness/contrast style corrections.
type Filter func(image.Image) image.Image

type decoder struct {
	scale  Scaler
	filter Filter
}

type DecodeOpt func(dec *decoder)

// WithScaler sets the resampling kernel used to shrink frames to the matrix
// grid. The default is ScaleLanczos.
func WithScaler(s Scaler) DecodeOpt {
	return func(dec *decoder) {
		dec.scale = s
	}
}

// WithFilter applies f to every composed frame before resizing.
func WithFilter(f Filter) DecodeOpt {
	return func(dec *decoder) {
		dec.filter = f
	}
}

/*
DecodeAnimation reads a GIF from r and produces an Animation whose frames are
composed to full coverage and resized to the matrix grid.

GIF frames may cover only the sub-rectangle that changed, and each carries a
disposal method describing what to do with the canvas afterwards, so frames
are drawn onto a persistent canvas the same way a GIF player would before
being snapshotted and resized. Delays are converted from the GIF's 1/100 s
unit to milliseconds and clamped to MinDelay. A single-frame GIF is treated
as a static image with a delay of DefaultDelay.
*/
func DecodeAnimation(r io.Reader, opts ...DecodeOpt) (*Animation, error) {
	dec := decoder{
		scale: ScaleLanczos,
	}
	for _, opt := range opts {
		opt(&dec)
	}

	giff, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode gif: %w", err)
	}
	if len(giff.Image) == 0 {
		return nil, fmt.Errorf("decode gif: no frames")
	}
	return dec.decode(giff)
}

func (dec *decoder) decode(giff *gif.GIF) (*Animation, error) {
	bounds := image.Rect(0, 0, giff.Config.Width, giff.Config.Height)
	if bounds.Empty() {
		bounds = giff.Image[0].Bounds()
	}
	screen := image.NewRGBA(bounds)

	anim := Animation{
		Frames: make([]image.Image, 0, len(giff.Image)),
		Delays: delaysOf(giff),
	}

	for i, frame := range giff.Image {
		// Dispose previous essentially means draw then undo.
		var previous *image.RGBA
		if i < len(giff.Disposal) && giff.Disposal[i] == gif.DisposalPrevious {
			previous = cloneRGBA(screen)
		}

		draw.Draw(screen, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		anim.Frames = append(anim.Frames, dec.prepare(cloneRGBA(screen)))

		if i < len(giff.Disposal) {
			switch giff.Disposal[i] {
			case gif.DisposalBackground:
				// The background canvas is transparent, which the encoder
				// later flattens to black.
				draw.Draw(screen, frame.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)
			case gif.DisposalPrevious:
				screen = previous
			}
		}
	}
	return &anim, nil
}

// prepare runs the optional filter and shrinks a composed frame to the matrix
// grid. Resizing is unconditional: the firmware reads exactly 16x16 frames.
func (dec *decoder) prepare(img image.Image) image.Image {
	if dec.filter != nil {
		img = dec.filter(img)
	}
	return dec.scale(MatrixWidth, MatrixHeight, img)
}

// delaysOf extracts one clamped millisecond delay per frame.
func delaysOf(giff *gif.GIF) []int {
	if len(giff.Image) <= 1 {
		return []int{DefaultDelay}
	}
	delays := make([]int, len(giff.Image))
	for i := range giff.Image {
		ms := 0
		if i < len(giff.Delay) {
			ms = giff.Delay[i] * 10 // image/gif counts in 1/100 s
		}
		if ms < MinDelay {
			ms = MinDelay
		}
		delays[i] = ms
	}
	return delays
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
