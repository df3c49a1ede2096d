// Command scorch unpacks Scorcher's TAGDEN.BIN: it extracts every
// embedded asset into a mirrored directory tree and converts the
// game's pixelmap images into ordinary raster files.
package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"

	"github.com/32bitkid/scorcher"
	"github.com/32bitkid/scorcher/crt"
	"github.com/32bitkid/scorcher/pix"
	"github.com/32bitkid/scorcher/tagden"
)

func main() {
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		output     string
		format     string
		withCRT    bool
		skipImages bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "scorch <TAGDEN.BIN>",
		Short: "extract and decode the assets of Scorcher's TAGDEN.BIN",
		Long: `scorch reads the directory at the head of TAGDEN.BIN, writes every
embedded asset beneath the output directory, and decodes each packed
pixelmap image into a sibling raster file.`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := encoderFor(format)
			if err != nil {
				return err
			}

			archive, err := scorcher.Open(args[0])
			if err != nil {
				return err
			}
			log.Infof("found %d files in %s", len(archive.Entries), archive.Path)

			extracted, err := archive.Extract(output, scorcher.ExtractOptions{
				OnFile: func(e tagden.Entry, dest string) {
					log.Debugf("extracted %s (%d bytes)", dest, e.Size)
				},
			})
			if err != nil {
				return err
			}
			log.Infof("all files extracted to %s", output)

			if skipImages {
				return nil
			}

			decoded := 0
			for _, f := range extracted {
				if !scorcher.IsPixelmap(f.Entry.Path) {
					continue
				}

				img, err := archive.DecodeImage(f.Entry)
				if err != nil {
					return err
				}

				fn := siblingName(f.Dest, enc.ext)
				if err := writeImage(fn, img, enc.encode); err != nil {
					return err
				}
				log.Debugf("decoded %s", fn)

				if withCRT {
					fn := siblingName(f.Dest, ".crt.png")
					if err := writeImage(fn, crt.Render(img), png.Encode); err != nil {
						return err
					}
					log.Debugf("rendered %s", fn)
				}
				decoded++
			}
			log.Infof("decoded %d images", decoded)

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "output", "destination directory for extracted assets")
	cmd.Flags().StringVar(&format, "format", "png", "raster format for decoded images (png or bmp)")
	cmd.Flags().BoolVar(&withCRT, "crt", false, "also render CRT-style previews")
	cmd.Flags().BoolVar(&skipImages, "skip-images", false, "extract only, leave pixelmaps undecoded")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every file")

	cmd.AddCommand(newListCmd(), newDecodeCmd())

	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <TAGDEN.BIN>",
		Short: "print the archive directory without extracting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := scorcher.Open(args[0])
			if err != nil {
				return err
			}

			for _, e := range archive.Entries {
				fmt.Println(entryRow(e))
			}
			fmt.Printf("%d files\n", len(archive.Entries))
			return nil
		},
	}
}

func newDecodeCmd() *cobra.Command {
	var (
		format  string
		withCRT bool
	)

	cmd := &cobra.Command{
		Use:   "decode <file.pix>...",
		Short: "decode pixelmap files already on disk",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := encoderFor(format)
			if err != nil {
				return err
			}

			for _, arg := range args {
				b, err := os.ReadFile(arg)
				if err != nil {
					return err
				}

				img, err := pix.Decode(b)
				if err != nil {
					return fmt.Errorf("%s: %w", arg, err)
				}

				fn := siblingName(arg, enc.ext)
				if err := writeImage(fn, img, enc.encode); err != nil {
					return err
				}
				log.Infof("decoded %s", fn)

				if withCRT {
					fn := siblingName(arg, ".crt.png")
					if err := writeImage(fn, crt.Render(img), png.Encode); err != nil {
						return err
					}
					log.Infof("rendered %s", fn)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "png", "raster format for decoded images (png or bmp)")
	cmd.Flags().BoolVar(&withCRT, "crt", false, "also render CRT-style previews")

	return cmd
}

type encoder struct {
	ext    string
	encode func(io.Writer, image.Image) error
}

func encoderFor(format string) (encoder, error) {
	switch strings.ToLower(format) {
	case "png":
		return encoder{".png", png.Encode}, nil
	case "bmp":
		return encoder{".bmp", bmp.Encode}, nil
	}
	return encoder{}, fmt.Errorf("unknown image format %q", format)
}

// entryRow formats one directory entry as a table line: tag, offset,
// size, path.
func entryRow(e tagden.Entry) string {
	return fmt.Sprintf("%-12s %10d %10d  %s", e.Tag, e.Offset, e.Size, e.Path)
}

// siblingName swaps a file's extension, keeping its directory and base
// name.
func siblingName(fn, ext string) string {
	return strings.TrimSuffix(fn, filepath.Ext(fn)) + ext
}

func writeImage(fn string, img image.Image, encode func(io.Writer, image.Image) error) error {
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	if err := encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
