package afrah

import (
	"image"

	"github.com/nfnt/resize"
	xdraw "golang.org/x/image/draw"
)

// DefaultDelay is the frame delay, in milliseconds, assumed for static images
// and for animations that carry no timing metadata.
const DefaultDelay = 100

// MinDelay is the floor applied to every per-frame delay. Some GIFs declare
// delays too short for the matrix to keep up with.
const MinDelay = 50

// Animation is a decoded sequence of frames ready for encoding. Frames are
// always exactly MatrixWidth x MatrixHeight; Delays holds one clamped value
// per frame, in milliseconds.
type Animation struct {
	Frames []image.Image
	Delays []int
}

// AverageDelay returns the single delay stored in the file header: the floor
// of the mean of all per-frame delays. The format keeps only this scalar, so
// per-frame timing variation is lost.
func (a *Animation) AverageDelay() int {
	if len(a.Delays) == 0 {
		return DefaultDelay
	}
	var sum int
	for _, d := range a.Delays {
		sum += d
	}
	return sum / len(a.Delays)
}

// Size returns the encoded size of the animation in bytes.
func (a *Animation) Size() int64 {
	return HeaderSize + int64(len(a.Frames))*FrameSize
}

// Scaler resizes an image to the given dimensions.
type Scaler func(width, height int, img image.Image) image.Image

// ScaleLanczos resamples with a Lanczos kernel. This is the default and
// matches what the firmware's reference converter used.
func ScaleLanczos(width, height int, img image.Image) image.Image {
	return resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
}

// ScaleNearest resamples with nearest-neighbor, which keeps pixel art crisp.
func ScaleNearest(width, height int, img image.Image) image.Image {
	return resize.Resize(uint(width), uint(height), img, resize.NearestNeighbor)
}

// ScaleCatmullRom resamples with a Catmull-Rom kernel.
func ScaleCatmullRom(width, height int, img image.Image) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// ParseScaler maps "lanczos", "nearest" or "catmullrom" to a Scaler. Empty
// input selects the default.
func ParseScaler(s string) (Scaler, error) {
	switch s {
	case "", "lanczos":
		return ScaleLanczos, nil
	case "nearest":
		return ScaleNearest, nil
	case "catmullrom":
		return ScaleCatmullRom, nil
	}
	return nil, errUnknownScaler(s)
}

type errUnknownScaler string

func (e errUnknownScaler) Error() string {
	return "unknown scaler \"" + string(e) + "\" (want lanczos, nearest or catmullrom)"
}
