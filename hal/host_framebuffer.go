package hal

import "sync"

type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte

	presented uint64
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	f.presented++
	f.mu.Unlock()
	return nil
}

// Presented returns how many frames have been presented.
func (f *hostFramebuffer) Presented() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.presented
}

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

// copyRGBA expands the framebuffer into dst as 8-bit RGBA.
func (f *hostFramebuffer) copyRGBA(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()

	src := f.buf
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		p := uint16(src[i]) | uint16(src[i+1])<<8
		j := (i / 2) * 4
		dst[j+0] = uint8(((p >> 11) & 0x1F) * 255 / 31)
		dst[j+1] = uint8(((p >> 5) & 0x3F) * 255 / 63)
		dst[j+2] = uint8((p & 0x1F) * 255 / 31)
		dst[j+3] = 0xFF
	}
}
