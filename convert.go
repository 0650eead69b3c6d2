package afrah

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoGIFs is returned by Converter.Run when the directory holds no inputs.
var ErrNoGIFs = errors.New("no gif files found")

// Converter batch-converts every GIF in a directory into sequentially
// numbered matrix binary files. Files are processed one at a time in
// lexicographic order; a failure skips that file and moves on.
type Converter struct {
	Dir      string       // directory to scan and write into; "" means "."
	Order    ChannelOrder // pixel byte order; zero value is RGB
	Scale    Scaler       // nil means ScaleLanczos
	Filter   Filter       // optional per-frame adjustment
	Progress io.Writer    // nil discards progress output
}

// Summary reports the outcome of a batch run.
type Summary struct {
	Converted  int
	Failed     int
	Outputs    []string
	TotalBytes int64
}

// Run converts every *.gif in the directory. The i-th input (1-based, sorted)
// becomes gif<i>.bin whether or not earlier inputs failed, so indexes stay
// stable across reruns. Existing outputs are overwritten.
func (c *Converter) Run() (Summary, error) {
	dir := c.Dir
	if dir == "" {
		dir = "."
	}
	progress := c.Progress
	if progress == nil {
		progress = io.Discard
	}

	inputs, err := listGIFs(dir)
	if err != nil {
		return Summary{}, err
	}
	if len(inputs) == 0 {
		return Summary{}, ErrNoGIFs
	}

	fmt.Fprintf(progress, "Found %d GIF file(s):\n", len(inputs))
	for i, name := range inputs {
		fmt.Fprintf(progress, "  %d. %s\n", i+1, name)
	}

	var sum Summary
	for i, name := range inputs {
		output := fmt.Sprintf("gif%d.bin", i+1)
		fmt.Fprintf(progress, "Processing %s -> %s\n", name, output)

		outPath := filepath.Join(dir, output)
		anim, err := c.convertFile(filepath.Join(dir, name), outPath)
		if err != nil {
			fmt.Fprintf(progress, "  error: %v\n", err)
			sum.Failed++
			continue
		}

		size := anim.Size()
		kind := "static"
		if len(anim.Frames) > 1 {
			kind = "animated"
		}
		fmt.Fprintf(progress, "  %s, %d frame(s), %dms delay\n", kind, len(anim.Frames), anim.AverageDelay())
		fmt.Fprintf(progress, "  wrote %s (%d bytes)\n", output, size)
		sum.Converted++
		sum.Outputs = append(sum.Outputs, output)
		sum.TotalBytes += size
	}

	fmt.Fprintf(progress, "Conversion complete: %d converted, %d failed, %d bytes total\n",
		sum.Converted, sum.Failed, sum.TotalBytes)
	return sum, nil
}

// convertFile decodes one GIF and writes one binary file. Both handles are
// closed before it returns, on the error path included.
func (c *Converter) convertFile(gifPath, binPath string) (*Animation, error) {
	in, err := os.Open(gifPath)
	if err != nil {
		return nil, err
	}
	opts := []DecodeOpt{}
	if c.Scale != nil {
		opts = append(opts, WithScaler(c.Scale))
	}
	if c.Filter != nil {
		opts = append(opts, WithFilter(c.Filter))
	}
	anim, err := DecodeAnimation(in, opts...)
	in.Close()
	if err != nil {
		return nil, err
	}

	out, err := os.Create(binPath)
	if err != nil {
		return nil, err
	}
	if err := NewEncoder(out, WithChannelOrder(c.Order)).Encode(anim); err != nil {
		out.Close()
		return nil, err
	}
	if err := out.Close(); err != nil {
		return nil, err
	}
	return anim, nil
}

// listGIFs returns the names of regular files ending in .gif, any case,
// sorted lexicographically.
func listGIFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".gif") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
