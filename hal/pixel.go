package hal

import "image/color"

// RGB565 packs an 8-bit-per-channel color into rrrrrggggggbbbbb.
func RGB565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// RGB888From565 expands a packed RGB565 pixel.
func RGB888From565(p uint16) (r, g, b uint8) {
	r = uint8(uint32(p>>11&0x1F) * 255 / 31)
	g = uint8(uint32(p>>5&0x3F) * 255 / 63)
	b = uint8(uint32(p&0x1F) * 255 / 31)
	return r, g, b
}

// Blend565 composites c over the packed pixel dst.
func Blend565(dst uint16, c color.NRGBA) uint16 {
	switch c.A {
	case 0:
		return dst
	case 0xFF:
		return RGB565(c.R, c.G, c.B)
	}
	dr, dg, db := RGB888From565(dst)
	a := uint32(c.A)
	mix := func(s, d uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(255-a) + 127) / 255)
	}
	return RGB565(mix(c.R, dr), mix(c.G, dg), mix(c.B, db))
}

// Put565 stores p little-endian at buf[off:off+2], ignoring offsets out of range.
func Put565(buf []byte, off int, p uint16) {
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(p)
	buf[off+1] = byte(p >> 8)
}

// At565 loads the little-endian pixel at buf[off:off+2].
func At565(buf []byte, off int) uint16 {
	if off < 0 || off+1 >= len(buf) {
		return 0
	}
	return uint16(buf[off]) | uint16(buf[off+1])<<8
}
