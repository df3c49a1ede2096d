package pix

// Pixel is one packed color sample from a pixelmap payload. The format
// is 16-bits long, stored big-endian, with three 5-bit channels packed
// against the high bit:
//
// bits  |
//  0    | unused
//  1-5  | blue
//  6-10 | green
// 11-15 | red
type Pixel uint16

// RGB unpacks the three 5-bit channels into 8-bit values. Channels are
// scaled by a plain left-shift of 3, the exact scale the game's own
// renderer used; the low three bits of each channel stay zero, so full
// intensity is 248, never 255.
func (p Pixel) RGB() (r, g, b uint8) {
	r = uint8((p>>11)&0x1F) << 3
	g = uint8((p>>6)&0x1F) << 3
	b = uint8((p>>1)&0x1F) << 3
	return
}
