package led

import (
	"fmt"
	"image"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"
	"periph.io/x/host/v3"
)

// Strip drives an NRZ LED strip over SPI, one LED per vertex-group.
// When no SPI port is available it falls back to an ANSI terminal
// preview so the pipeline stays exercisable on a dev box.
type Strip struct {
	drawer display.Drawer
	pixels int
	img    *image.NRGBA

	// SPI reports whether real hardware is attached (false = terminal
	// fallback).
	SPI bool
}

// NewStrip opens the SPI port (dev "" = first registered port) and
// prepares an NRZ encoder for pixels LEDs. speedHz <= 0 picks a safe
// WS2812 default.
func NewStrip(dev string, pixels int, speedHz int) (*Strip, error) {
	if pixels <= 0 {
		return nil, fmt.Errorf("invalid pixel count: %d", pixels)
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	s := &Strip{
		pixels: pixels,
		img:    image.NewNRGBA(image.Rect(0, 0, pixels, 1)),
	}
	port, err := spireg.Open(dev)
	if err != nil {
		s.drawer = screen.New(pixels)
		return s, nil
	}
	if speedHz <= 0 {
		speedHz = 2400000
	}
	d, err := nrzled.NewSPI(port, &nrzled.Opts{
		NumPixels: pixels,
		Channels:  3,
		Freq:      physic.Frequency(speedHz) * physic.Hertz,
	})
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	_ = d.Halt()
	s.drawer = d
	s.SPI = true
	return s, nil
}

func (s *Strip) Write(rgb []byte) error {
	if len(rgb) != s.pixels*3 {
		return fmt.Errorf("rgb length %d does not match pixel count %d", len(rgb), s.pixels)
	}
	for i := 0; i < s.pixels; i++ {
		o := i * 4
		s.img.Pix[o+0] = rgb[i*3+0]
		s.img.Pix[o+1] = rgb[i*3+1]
		s.img.Pix[o+2] = rgb[i*3+2]
		s.img.Pix[o+3] = 0xFF
	}
	return s.drawer.Draw(s.drawer.Bounds(), s.img, image.Point{})
}

func (s *Strip) Close() error {
	return s.drawer.Halt()
}
