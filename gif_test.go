package afrah_test

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"

	afrah "github.com/Studio-Poetics/Afrah"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// palettedFrame builds a GIF frame filled with a single color.
func palettedFrame(w, h int, c color.RGBA) *image.Paletted {
	return image.NewPaletted(image.Rect(0, 0, w, h), color.Palette{c, color.RGBA{A: 0xff}})
}

// gifBytes encodes frames into an in-memory GIF stream. Delays are in the
// format's native 1/100 s unit.
func gifBytes(frames []*image.Paletted, delays []int) []byte {
	var buf bytes.Buffer
	Expect(gif.EncodeAll(&buf, &gif.GIF{Image: frames, Delay: delays})).To(Succeed())
	return buf.Bytes()
}

func expectSolid(img image.Image, want color.RGBA) {
	bounds := img.Bounds()
	Expect(bounds.Dx()).To(Equal(afrah.MatrixWidth))
	Expect(bounds.Dy()).To(Equal(afrah.MatrixHeight))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			Expect([3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}).
				To(Equal([3]uint8{want.R, want.G, want.B}))
		}
	}
}

var red = color.RGBA{0xff, 0x00, 0x00, 0xff}
var blue = color.RGBA{0x00, 0x00, 0xff, 0xff}

var _ = Describe("DecodeAnimation", func() {
	It("treats a single-frame GIF as static with the default delay", func() {
		data := gifBytes([]*image.Paletted{palettedFrame(32, 32, red)}, []int{0})

		anim, err := afrah.DecodeAnimation(bytes.NewReader(data))
		Expect(err).NotTo(HaveOccurred())
		Expect(anim.Frames).To(HaveLen(1))
		Expect(anim.Delays).To(Equal([]int{afrah.DefaultDelay}))
		Expect(anim.AverageDelay()).To(Equal(100))
	})

	It("resizes every frame to the matrix grid", func() {
		data := gifBytes([]*image.Paletted{palettedFrame(64, 48, red)}, []int{0})

		anim, err := afrah.DecodeAnimation(bytes.NewReader(data))
		Expect(err).NotTo(HaveOccurred())
		expectSolid(anim.Frames[0], red)
	})

	It("converts and clamps per-frame delays", func() {
		data := gifBytes([]*image.Paletted{
			palettedFrame(16, 16, red),
			palettedFrame(16, 16, blue),
		}, []int{1, 20}) // 10ms and 200ms

		anim, err := afrah.DecodeAnimation(bytes.NewReader(data))
		Expect(err).NotTo(HaveOccurred())
		Expect(anim.Delays).To(Equal([]int{50, 200}))
		Expect(anim.AverageDelay()).To(Equal(125))
	})

	It("keeps frames in source order", func() {
		data := gifBytes([]*image.Paletted{
			palettedFrame(16, 16, red),
			palettedFrame(16, 16, blue),
		}, []int{10, 10})

		anim, err := afrah.DecodeAnimation(bytes.NewReader(data))
		Expect(err).NotTo(HaveOccurred())
		Expect(anim.Frames).To(HaveLen(2))
		expectSolid(anim.Frames[0], red)
		expectSolid(anim.Frames[1], blue)
	})

	It("applies the filter before resizing", func() {
		data := gifBytes([]*image.Paletted{palettedFrame(32, 32, red)}, []int{0})

		anim, err := afrah.DecodeAnimation(bytes.NewReader(data), afrah.WithFilter(func(img image.Image) image.Image {
			swapped := image.NewRGBA(img.Bounds())
			for i := 0; i < len(swapped.Pix); i += 4 {
				swapped.Pix[i+2], swapped.Pix[i+3] = 0xff, 0xff
			}
			return swapped
		}), afrah.WithScaler(afrah.ScaleNearest))
		Expect(err).NotTo(HaveOccurred())
		Expect(anim.Frames).To(HaveLen(1))
		r, g, b, _ := anim.Frames[0].At(0, 0).RGBA()
		Expect([3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}).
			To(Equal([3]uint8{blue.R, blue.G, blue.B}))
	})

	It("rejects input that is not a GIF", func() {
		_, err := afrah.DecodeAnimation(bytes.NewReader([]byte("definitely not a gif")))
		Expect(err).To(HaveOccurred())
	})
})
