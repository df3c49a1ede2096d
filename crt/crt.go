// Package crt renders a decoded raster the way it looked on the
// monitors of the era: scaled up with horizontal bleed, scan-lines, and
// an aperture-grille shadow mask.
package crt

import (
	"image"
	"image/color"

	clr "github.com/lucasb-eyer/go-colorful"
)

const scale = 6

func rgbMix(c1, c2 color.Color, t float64) color.Color {
	clr1, _ := clr.MakeColor(c1)
	clr2, _ := clr.MakeColor(c2)
	if (clr1.R == clr1.G && clr1.G == clr1.B) || (clr2.R == clr2.G && clr2.G == clr2.B) {
		return clr1.BlendRgb(clr2, t).Clamped()
	}
	return clr1.BlendLab(clr2, t).Clamped()
}

func darken(c color.Color, p float64) color.Color {
	src, _ := clr.MakeColor(c)
	return src.BlendRgb(clr.Color{}, p).Clamped()
}

func rgbMul(a, b color.Color) color.Color {
	r1, g1, b1, _ := a.RGBA()
	r2, g2, b2, _ := b.RGBA()
	return color.RGBA{
		R: uint8((r1 * r2 / 0xffff) >> 8),
		G: uint8((g1 * g2 / 0xffff) >> 8),
		B: uint8((b1 * b2 / 0xffff) >> 8),
		A: 0xFF,
	}
}

func clamp(i int, min int, max int) int {
	if i < min {
		return min
	}
	if i > max {
		return max
	}
	return i
}

var (
	maskRed   = color.RGBA{R: 0xFF, G: 0x99, B: 0x99, A: 0xff}
	maskGreen = color.RGBA{G: 0xFF, R: 0x99, B: 0x99, A: 0xff}
	maskBlue  = color.RGBA{B: 0xFF, R: 0x99, G: 0x99, A: 0xff}
)

// Render scales src by 6x and applies the phosphor treatment. The
// source is read through the image.Image interface, so any decoded
// raster works.
func Render(src image.Image) image.Image {
	srcRect := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, srcRect.Dx()*scale, srcRect.Dy()*scale))
	for sy, dy := srcRect.Min.Y, 0; sy < srcRect.Max.Y; sy, dy = sy+1, dy+scale {
		for sx, dx := srcRect.Min.X, 0; sx < srcRect.Max.X; sx, dx = sx+1, dx+scale {
			lc := src.At(clamp(sx-1, srcRect.Min.X, srcRect.Max.X), sy)
			c := src.At(sx, sy)
			rc := src.At(clamp(sx+1, srcRect.Min.X, srcRect.Max.X), sy)
			for i := 0; i < scale*scale; i++ {
				ix, iy := i%scale, i/scale
				co := c

				// Bleed
				switch ix {
				case 0:
					co = rgbMix(lc, c, 3.0/6.0)
				case 1:
					co = rgbMix(lc, c, 4.0/6.0)
				case 2:
					co = rgbMix(lc, c, 5.0/6.0)
				case 4:
					co = rgbMix(c, rc, 1.0/6.0)
				case 5:
					co = rgbMix(c, rc, 2.0/6.0)
				}

				// Scan-lines
				switch iy {
				case 0:
					co = darken(co, 0.7)
				case 1:
					co = darken(co, 0.2)
				case 4:
					co = darken(co, 0.1)
				case 5:
					co = darken(co, 0.4)
				}

				// Shadow mask
				switch iy % 2 {
				case 0:
					switch ix {
					case 0, 1:
						co = rgbMul(co, maskRed)
					case 2, 3:
						co = rgbMul(co, maskGreen)
					case 4, 5:
						co = rgbMul(co, maskBlue)
					}
				case 1:
					switch ix {
					case 3, 4:
						co = rgbMul(co, maskRed)
					case 0, 5:
						co = rgbMul(co, maskGreen)
					case 1, 2:
						co = rgbMul(co, maskBlue)
					}
				}

				dst.Set(dx+ix, dy+iy, co)
			}
		}
	}

	return dst
}
