package afrah

import (
	"image"
	"image/color"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
)

const previewPad = 4

// Preview renders the animation as a contact sheet: every frame enlarged to
// cell pixels per LED and laid out in a grid, left to right and top to
// bottom, with a thin border around each frame. Useful for eyeballing a .bin
// without hardware attached.
func Preview(anim *Animation, cell, columns int) image.Image {
	if cell < 1 {
		cell = 8
	}
	if columns < 1 {
		columns = 8
	}
	if columns > len(anim.Frames) {
		columns = len(anim.Frames)
	}
	rows := (len(anim.Frames) + columns - 1) / columns

	frameW := MatrixWidth * cell
	frameH := MatrixHeight * cell
	dst := image.NewRGBA(image.Rect(0, 0,
		columns*frameW+(columns+1)*previewPad,
		rows*frameH+(rows+1)*previewPad))

	gc := draw2dimg.NewGraphicContext(dst)
	gc.SetFillColor(color.RGBA{0x20, 0x20, 0x20, 0xff})
	draw2dkit.Rectangle(gc, 0, 0, float64(dst.Bounds().Dx()), float64(dst.Bounds().Dy()))
	gc.Fill()

	for i, frame := range anim.Frames {
		ox := previewPad + (i%columns)*(frameW+previewPad)
		oy := previewPad + (i/columns)*(frameH+previewPad)
		drawFrame(gc, frame, ox, oy, cell)
	}
	return dst
}

func drawFrame(gc *draw2dimg.GraphicContext, frame image.Image, ox, oy, cell int) {
	bounds := frame.Bounds()
	for y := 0; y < MatrixHeight; y++ {
		for x := 0; x < MatrixWidth; x++ {
			r, g, b, _ := frame.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			gc.SetFillColor(color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 0xff})
			draw2dkit.Rectangle(gc,
				float64(ox+x*cell), float64(oy+y*cell),
				float64(ox+(x+1)*cell), float64(oy+(y+1)*cell))
			gc.Fill()
		}
	}

	gc.SetStrokeColor(color.RGBA{0x60, 0x60, 0x60, 0xff})
	gc.SetLineWidth(1)
	draw2dkit.Rectangle(gc,
		float64(ox), float64(oy),
		float64(ox+MatrixWidth*cell), float64(oy+MatrixHeight*cell))
	gc.Stroke()
}
