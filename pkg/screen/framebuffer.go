package screen

import (
	"io"
	"os"
	"time"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
)

const size = 128

// Framebuffer renders frames onto the 128x128 RGB565 LCD.
type Framebuffer struct {
	f io.WriteSeeker
}

func OpenFramebuffer(path string) (*Framebuffer, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0666)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open screen")
	}
	return &Framebuffer{f: f}, nil
}

func (fb *Framebuffer) Show(lines []string) error {
	dc := gg.NewContext(size, size)
	dc.SetRGBA(1, 0.9, 0, 1)
	for i, l := range lines {
		dc.DrawString(l, 2, float64(14+i*15))
	}
	return fb.write(render(dc))
}

// render converts the image to the panel's byte order, which is rotated a
// quarter turn from the drawing.
func render(dc *gg.Context) []byte {
	buf := make([]byte, size*size*2)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := dc.Image().At(x, y)
			r, g, b, _ := c.RGBA() // 16-bit pre-multiplied

			rb := byte(r >> (16 - 5))
			gb := byte(g >> (16 - 6)) // Green has 6 bits
			bb := byte(b >> (16 - 5))

			buf[(size-1-y)*2+x*size*2+1] = (rb << 3) | (gb >> 3)
			buf[(size-1-y)*2+x*size*2] = bb | (gb << 5)
		}
	}
	return buf
}

func (fb *Framebuffer) write(buf []byte) error {
	if _, err := fb.f.Seek(0, 0); err != nil {
		return errors.Wrap(err, "seek failed")
	}
	for i := 0; i < size; i++ {
		if _, err := fb.f.Write(buf[i*256 : i*256+256]); err != nil {
			return errors.Wrap(err, "write failed")
		}
		time.Sleep(10 * time.Microsecond)
	}
	return nil
}

// Close blanks the screen.
func (fb *Framebuffer) Close() error {
	err := fb.write(make([]byte, size*size*2))
	if c, ok := fb.f.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
