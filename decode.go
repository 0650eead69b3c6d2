package afrah

import (
	"encoding/binary"
	"fmt"
	"image"
	"io"
)

// maxFrames bounds how large a header Decode will believe. A 16x16 animation
// with this many frames is already ~50 MB on disk.
const maxFrames = 1 << 16

/*
Decode reads a matrix binary file back into an Animation. Pixel bytes are
interpreted in identity (RGB) order; files written with a different channel
order decode with channels swapped accordingly. Since the header stores only
the average delay, every decoded frame reports that same delay.
*/
func Decode(r io.Reader) (*Animation, error) {
	var header [HeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	count := binary.LittleEndian.Uint32(header[0:4])
	delay := binary.LittleEndian.Uint32(header[4:8])
	if count == 0 || count > maxFrames {
		return nil, fmt.Errorf("implausible frame count %d", count)
	}

	anim := Animation{
		Frames: make([]image.Image, 0, count),
		Delays: make([]int, count),
	}
	for i := range anim.Delays {
		anim.Delays[i] = int(delay)
	}

	buf := make([]byte, FrameSize)
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("read frame %d: %w", i, err)
		}
		frame := image.NewRGBA(image.Rect(0, 0, MatrixWidth, MatrixHeight))
		for p := 0; p < MatrixWidth*MatrixHeight; p++ {
			frame.Pix[p*4+0] = buf[p*3+0]
			frame.Pix[p*4+1] = buf[p*3+1]
			frame.Pix[p*4+2] = buf[p*3+2]
			frame.Pix[p*4+3] = 0xff
		}
		anim.Frames = append(anim.Frames, frame)
	}
	return &anim, nil
}
