package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
)

// DefaultThreshold is the luminance below which a pixel counts as wall
const DefaultThreshold = 150

// BlockState classifies a single bitmap coordinate
type BlockState int

const (
	Wall BlockState = iota
	Open
	OutOfBounds
)

func (s BlockState) String() string {
	switch s {
	case Wall:
		return "wall"
	case Open:
		return "open"
	case OutOfBounds:
		return "out-of-bounds"
	}
	return "unknown"
}

// Bitmap is a read-only single channel image
type Bitmap interface {
	Width() int
	Height() int
	Sample(x, y int) uint8
}

// Sampler turns luminance samples into block states
type Sampler struct {
	Threshold uint8
}

// NewSampler creates a sampler with the given darkness threshold
func NewSampler(threshold uint8) Sampler {
	return Sampler{Threshold: threshold}
}

// Classify returns OutOfBounds for coordinates outside the bitmap instead of
// failing, so callers can treat the image edge like a wall.
func (s Sampler) Classify(bm Bitmap, x, y int) BlockState {
	if x < 0 || y < 0 || x >= bm.Width() || y >= bm.Height() {
		return OutOfBounds
	}
	if bm.Sample(x, y) < s.Threshold {
		return Wall
	}
	return Open
}

// IsOpen is shorthand for Classify(...) == Open
func (s Sampler) IsOpen(bm Bitmap, p Position) bool {
	return s.Classify(bm, p.X, p.Y) == Open
}

// GrayBitmap is a Bitmap backed by a decoded grayscale image
type GrayBitmap struct {
	img *image.Gray
}

// NewGrayBitmap converts any image to luminance. Coordinates are rebased so
// that the top-left pixel is (0,0).
func NewGrayBitmap(src image.Image) *GrayBitmap {
	if g, ok := src.(*image.Gray); ok && g.Rect.Min == (image.Point{}) {
		return &GrayBitmap{img: g}
	}

	b := src.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.GrayModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			gray.SetGray(x, y, c)
		}
	}
	return &GrayBitmap{img: gray}
}

func (b *GrayBitmap) Width() int  { return b.img.Rect.Dx() }
func (b *GrayBitmap) Height() int { return b.img.Rect.Dy() }

func (b *GrayBitmap) Sample(x, y int) uint8 {
	return b.img.GrayAt(x, y).Y
}

// DecodeImage decodes a PNG, JPEG, GIF or BMP stream. Images with more than
// maxPixels pixels are rejected from their header before any pixel data is
// allocated; maxPixels <= 0 disables the check.
func DecodeImage(r io.Reader, maxPixels int) (image.Image, error) {
	img, err := decodeLimited(r, maxPixels)
	if err != nil {
		return nil, &ImageDecodeError{Err: err}
	}
	return img, nil
}

// LoadImage opens and decodes the image at path, with the same size limit
// as DecodeImage
func LoadImage(path string, maxPixels int) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ImageDecodeError{Path: path, Err: err}
	}
	defer file.Close()

	img, err := decodeLimited(file, maxPixels)
	if err != nil {
		return nil, &ImageDecodeError{Path: path, Err: err}
	}
	return img, nil
}

func decodeLimited(r io.Reader, maxPixels int) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	header, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if maxPixels > 0 && int64(header.Width)*int64(header.Height) > int64(maxPixels) {
		return nil, fmt.Errorf("%dx%d exceeds %d pixels: %w", header.Width, header.Height, maxPixels, ErrImageTooLarge)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}
