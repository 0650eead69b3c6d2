package afrah

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"time"
)

// Player animates a decoded animation in a terminal. Each LED is drawn as two
// space characters with a truecolor background escape, so a frame occupies a
// 32x16 character block. Cursor repositioning codes rewind to the top of the
// block between frames.
type Player struct {
	Writer io.Writer
	Loops  int // number of times to play the animation; <= 0 loops forever
}

// Play renders every frame with the animation's stored average delay between
// them. With Loops <= 0 it only returns on a write error.
func (p *Player) Play(anim *Animation) error {
	delay := time.Duration(anim.AverageDelay()) * time.Millisecond

	p.write("\033[?25l") // hide cursor
	defer p.write("\033[?12l\033[?25h")

	for c := 0; p.Loops <= 0 || c < p.Loops; c++ {
		for i, frame := range anim.Frames {
			wait := time.After(delay)
			if c > 0 || i > 0 {
				// Move the cursor to the beginning of the line and back up
				// over the previous frame.
				if err := p.write(fmt.Sprintf("\033[999D\033[%dA", MatrixHeight)); err != nil {
					return err
				}
			}
			if err := p.flush(frame); err != nil {
				return err
			}
			<-wait
		}
	}
	return nil
}

func (p *Player) flush(frame image.Image) error {
	var buf bytes.Buffer
	bounds := frame.Bounds()
	for y := 0; y < MatrixHeight; y++ {
		for x := 0; x < MatrixWidth; x++ {
			r, g, b, _ := frame.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			fmt.Fprintf(&buf, "\033[48;2;%d;%d;%dm  ", uint8(r>>8), uint8(g>>8), uint8(b>>8))
		}
		buf.WriteString("\033[0m\n")
	}
	_, err := p.Writer.Write(buf.Bytes())
	return err
}

func (p *Player) write(s string) error {
	_, err := p.Writer.Write([]byte(s))
	return err
}
