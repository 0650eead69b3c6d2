package main

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/Studio-Poetics/Afrah"
	"github.com/codegangsta/cli"
	"github.com/disintegration/imaging"
)

func main() {
	app := cli.NewApp()
	app.Version = "0.1.0"
	app.Name = "gifconv"
	app.Usage = "Converts GIF files into the binary animation format read by the Afrah LED matrix."
	app.UsageText = "1) gifconv [options]           converts every .gif in the directory\n" +
		/*      */ "   2) gifconv [command] [file]    inspects or plays a converted .bin"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "dir,d",
			Usage: "`DIR` to scan for .gif files; outputs are written alongside them.",
			Value: ".",
		},
		cli.StringFlag{
			Name:  "order,o",
			Usage: "Pixel byte `ORDER`: rgb, grb or bgr. The firmware dictates which one is right for the strip wiring.",
			Value: "rgb",
		},
		cli.StringFlag{
			Name:  "scale,s",
			Usage: "Resampling `KERNEL`: lanczos, nearest or catmullrom.",
			Value: "lanczos",
		},
		cli.Float64Flag{
			Name:  "gamma,g",
			Usage: "`GAMMA` = 1.0 gives the original image. GAMMA less than 1.0 darkens the image and GAMMA greater than 1.0 lightens it.",
			Value: 1.0,
		},
		cli.Float64Flag{
			Name:  "brightness,b",
			Usage: "`BRIGHTNESS` = 0 gives the original image. BRIGHTNESS = -100 gives solid black image. BRIGHTNESS = 100 gives solid white image.",
			Value: 0.0,
		},
		cli.Float64Flag{
			Name:  "contrast,c",
			Usage: "`CONTRAST` = 0 gives the original image. CONTRAST = -100 gives solid grey image. CONTRAST = 100 gives maximum contrast.",
			Value: 0.0,
		},
		cli.Float64Flag{
			Name:  "sharpen",
			Usage: "`SHARPEN` = 0 gives the original image. SHARPEN greater than 0 sharpens the image.",
			Value: 0.0,
		},
		cli.BoolFlag{
			Name:  "invert,i",
			Usage: "Inverts the image.",
		},
	}
	app.Action = func(c *cli.Context) {
		order, err := afrah.ParseChannelOrder(c.String("order"))
		if err != nil {
			exit(err.Error(), 1)
		}
		scale, err := afrah.ParseScaler(c.String("scale"))
		if err != nil {
			exit(err.Error(), 1)
		}

		converter := afrah.Converter{
			Dir:      c.String("dir"),
			Order:    order,
			Scale:    scale,
			Filter:   filterFromFlags(c),
			Progress: os.Stdout,
		}
		summary, err := converter.Run()
		if err == afrah.ErrNoGIFs {
			exit("No GIF files found in "+converter.Dir, 1)
		}
		if err != nil {
			exit(err.Error(), 1)
		}
		if summary.Failed > 0 {
			os.Exit(1)
		}
	}
	app.Commands = []cli.Command{
		{
			Name:      "info",
			Usage:     "Prints the header of one or more converted .bin files.",
			ArgsUsage: "[file...]",
			Action: func(c *cli.Context) {
				if len(c.Args()) == 0 {
					exit("info: no files given", 1)
				}
				for _, path := range c.Args() {
					anim, err := decodeBin(path)
					if err != nil {
						exit(err.Error(), 1)
					}
					fmt.Printf("%s: %d frame(s), %dms delay, %d bytes\n",
						path, len(anim.Frames), anim.AverageDelay(), anim.Size())
				}
			},
		},
		{
			Name:      "preview",
			Usage:     "Renders a converted .bin file as a PNG contact sheet.",
			ArgsUsage: "[file]",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out,o",
					Usage: "`PNG` file to write.",
					Value: "preview.png",
				},
				cli.IntFlag{
					Name:  "cell",
					Usage: "`PIXELS` per LED.",
					Value: 8,
				},
				cli.IntFlag{
					Name:  "columns",
					Usage: "Frames per `ROW` of the sheet.",
					Value: 8,
				},
			},
			Action: func(c *cli.Context) {
				anim, err := decodeBin(c.Args().First())
				if err != nil {
					exit(err.Error(), 1)
				}
				sheet := afrah.Preview(anim, c.Int("cell"), c.Int("columns"))
				if err := writePNG(c.String("out"), sheet); err != nil {
					exit(err.Error(), 1)
				}
				fmt.Printf("wrote %s (%d frames)\n", c.String("out"), len(anim.Frames))
			},
		},
		{
			Name:      "play",
			Usage:     "Animates a converted .bin file in the terminal. Needs truecolor support.",
			ArgsUsage: "[file]",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "loops,l",
					Usage: "`TIMES` to play the animation; 0 loops until interrupted.",
					Value: 1,
				},
			},
			Action: func(c *cli.Context) {
				anim, err := decodeBin(c.Args().First())
				if err != nil {
					exit(err.Error(), 1)
				}
				player := afrah.Player{Writer: os.Stdout, Loops: c.Int("loops")}
				if err := player.Play(anim); err != nil {
					exit(err.Error(), 1)
				}
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// filterFromFlags assembles the optional imaging adjustments, applied to each
// composed frame before it is shrunk to the matrix grid.
func filterFromFlags(c *cli.Context) afrah.Filter {
	return func(img image.Image) image.Image {
		if c.IsSet("gamma") {
			img = imaging.AdjustGamma(img, c.Float64("gamma"))
		}
		if c.IsSet("brightness") {
			img = imaging.AdjustBrightness(img, c.Float64("brightness"))
		}
		if c.IsSet("sharpen") {
			img = imaging.Sharpen(img, c.Float64("sharpen"))
		}
		if c.IsSet("contrast") {
			img = imaging.AdjustContrast(img, c.Float64("contrast"))
		}
		if c.Bool("invert") {
			img = imaging.Invert(img)
		}
		return img
	}
}

func decodeBin(path string) (*afrah.Animation, error) {
	if path == "" {
		return nil, fmt.Errorf("no .bin file given")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return afrah.Decode(f)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func exit(msg string, code int) {
	fmt.Println(msg)
	os.Exit(code)
}
