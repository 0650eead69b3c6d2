/*
Package afrah converts GIF animations into the binary frame format read by the
Afrah 16x16 LED matrix firmware. The format is an 8 byte header (frame count and
average frame delay, both little-endian uint32) followed by one 16x16 grid of
3-byte color values per frame, in raster order.
*/
package afrah

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"io"
)

// Matrix dimensions expected by the firmware. The converter always resizes to
// this grid regardless of input dimensions.
const (
	MatrixWidth  = 16
	MatrixHeight = 16
)

// HeaderSize is the fixed size of the file header in bytes.
const HeaderSize = 8

// FrameSize is the encoded size of a single frame in bytes.
const FrameSize = MatrixWidth * MatrixHeight * 3

// ChannelOrder selects the byte order of each encoded pixel. NeoPixel strips
// are wired in a few different orders, so the firmware side dictates which one
// is correct. RGB (no reordering) is the default.
type ChannelOrder int

const (
	RGB ChannelOrder = iota
	GRB
	BGR
)

// ParseChannelOrder maps "rgb", "grb" or "bgr" to a ChannelOrder.
func ParseChannelOrder(s string) (ChannelOrder, error) {
	switch s {
	case "rgb":
		return RGB, nil
	case "grb":
		return GRB, nil
	case "bgr":
		return BGR, nil
	}
	return RGB, fmt.Errorf("unknown channel order %q (want rgb, grb or bgr)", s)
}

func (o ChannelOrder) String() string {
	switch o {
	case GRB:
		return "grb"
	case BGR:
		return "bgr"
	}
	return "rgb"
}

func (o ChannelOrder) permute(r, g, b uint8) (uint8, uint8, uint8) {
	switch o {
	case GRB:
		return g, r, b
	case BGR:
		return b, g, r
	}
	return r, g, b
}

type EncoderOpt func(enc *Encoder)

// WithChannelOrder sets the per-pixel byte order. The default is RGB.
func WithChannelOrder(order ChannelOrder) EncoderOpt {
	return func(enc *Encoder) {
		enc.order = order
	}
}

// Encoder writes animations in the matrix binary format.
type Encoder struct {
	writer io.Writer
	order  ChannelOrder
}

func NewEncoder(w io.Writer, opts ...EncoderOpt) *Encoder {
	enc := Encoder{
		writer: w,
		order:  RGB,
	}
	for _, opt := range opts {
		opt(&enc)
	}
	return &enc
}

// Encode writes the header followed by every frame of anim. Frames must
// already be sized to the 16x16 matrix; see DecodeAnimation.
func (enc *Encoder) Encode(anim *Animation) error {
	if len(anim.Frames) == 0 {
		return fmt.Errorf("animation has no frames")
	}
	w := bufio.NewWriter(enc.writer)

	var header [HeaderSize]byte
	binary.LittleEndian.PutUint32(header[0:4], uint32(len(anim.Frames)))
	binary.LittleEndian.PutUint32(header[4:8], uint32(anim.AverageDelay()))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}

	for _, frame := range anim.Frames {
		if err := enc.encodeFrame(w, frame); err != nil {
			return err
		}
	}
	return w.Flush()
}

// encodeFrame emits MatrixWidth*MatrixHeight*3 bytes, rows top to bottom and
// columns left to right within each row. The firmware reads pixels back in
// this exact order, so the loop nesting is part of the wire format.
func (enc *Encoder) encodeFrame(w *bufio.Writer, img image.Image) error {
	bounds := img.Bounds()
	var pix [3]byte
	for y := 0; y < MatrixHeight; y++ {
		for x := 0; x < MatrixWidth; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			pix[0], pix[1], pix[2] = enc.order.permute(uint8(r>>8), uint8(g>>8), uint8(b>>8))
			if _, err := w.Write(pix[:]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Encode writes anim to w in the matrix binary format with the default
// (identity) channel order.
func Encode(w io.Writer, anim *Animation) error {
	return NewEncoder(w).Encode(anim)
}
