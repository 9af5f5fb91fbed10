package pdfthumb

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Rect selects a portion of a page, in the page's native units (points).
// The zero Rect means "not set": the whole page is rendered. An explicitly
// requested empty rectangle is therefore indistinguishable from unset.
type Rect struct {
	X      uint32
	Y      uint32
	Width  uint32
	Height uint32
}

func (r Rect) isZero() bool {
	return r == Rect{}
}

// ImageFormat selects the codec that encodes the rendered page.
type ImageFormat int

const (
	Png ImageFormat = iota
	Bmp
	Jpeg
	Tiff
	Gif
)

// encoderFormats maps each format to its encoder identifier in the imaging
// subsystem. The identifiers are fixed; there is no "no format" state.
var encoderFormats = map[ImageFormat]imaging.Format{
	Png:  imaging.PNG,
	Bmp:  imaging.BMP,
	Jpeg: imaging.JPEG,
	Tiff: imaging.TIFF,
	Gif:  imaging.GIF,
}

func (f ImageFormat) encoder() (imaging.Format, error) {
	enc, ok := encoderFormats[f]
	if !ok {
		return 0, platformError(fmt.Sprintf("unable to select encoder for image format %d", int(f)), nil)
	}
	return enc, nil
}

func (f ImageFormat) String() string {
	switch f {
	case Png:
		return "png"
	case Bmp:
		return "bmp"
	case Jpeg:
		return "jpeg"
	case Tiff:
		return "tiff"
	case Gif:
		return "gif"
	}
	return fmt.Sprintf("ImageFormat(%d)", int(f))
}

// Options configures a single render call. The zero value renders the first
// page at its native size, whole page, as PNG. Options is a plain value and is
// safe to share across concurrent calls.
type Options struct {
	// Width is the destination width of the rendered page. If Width is not
	// specified, the page's aspect ratio is maintained relative to the
	// destination height.
	Width uint32
	// Height is the destination height of the rendered page. If Height is not
	// specified, the page's aspect ratio is maintained relative to the
	// destination width.
	Height uint32
	// Rect is the portion of the page to be rendered. If Rect is not
	// specified, the whole page is rendered.
	Rect Rect
	// Page is the zero-based index of the page to be rendered. If Page is not
	// specified, the first page is rendered.
	Page uint32
	// Format is the image format of the thumbnail. If Format is not
	// specified, PNG is used.
	Format ImageFormat
}

// renderPlan is the engine-side configuration derived from Options immediately
// before a render call. It is write-once and never reused across calls.
type renderPlan struct {
	// Pixel size handed to the engine. A zero dimension is derived by the
	// engine from the page aspect ratio.
	renderWidth  int
	renderHeight int
	// crop is applied to the rendered image; the zero rectangle means no crop.
	crop image.Rectangle
	// Exact output size enforced after cropping. A zero targetHeight with a
	// non-zero targetWidth preserves the aspect ratio, and vice versa. Both
	// zero leaves the image as rendered.
	targetWidth  int
	targetHeight int
	encoder      imaging.Format
}

// plan translates Options into a renderPlan for a page of the given native
// size. The input Options is never mutated.
func (o Options) plan(pageWidth, pageHeight float64) (*renderPlan, error) {
	enc, err := o.Format.encoder()
	if err != nil {
		return nil, err
	}
	p := &renderPlan{encoder: enc}

	if o.Rect.isZero() {
		switch {
		case o.Width > 0 && o.Height > 0:
			// The engine fits within the requested box preserving aspect
			// ratio; the destination size is exact, so resize afterwards.
			p.renderWidth = int(o.Width)
			p.targetWidth = int(o.Width)
			p.targetHeight = int(o.Height)
		case o.Width > 0:
			p.renderWidth = int(o.Width)
		case o.Height > 0:
			p.renderHeight = int(o.Height)
		default:
			p.renderWidth = nativePixels(pageWidth)
			p.renderHeight = nativePixels(pageHeight)
		}
		return p, nil
	}

	// A sub-rectangle is cut from the natively rendered page before any
	// destination sizing applies. Rect units are page points, which map 1:1 to
	// pixels at native size. No bounds validation: an out-of-range rect is
	// clamped by the crop, and a fully disjoint one yields an empty image that
	// the encoder rejects.
	p.renderWidth = nativePixels(pageWidth)
	p.renderHeight = nativePixels(pageHeight)
	// Sum in int so a rect near the top of the uint32 range cannot wrap and
	// invert the rectangle.
	x, y := int(o.Rect.X), int(o.Rect.Y)
	p.crop = image.Rect(x, y, x+int(o.Rect.Width), y+int(o.Rect.Height))
	p.targetWidth = int(o.Width)
	p.targetHeight = int(o.Height)
	return p, nil
}

// nativePixels converts a page dimension in points to pixels at 72 DPI.
func nativePixels(points float64) int {
	return int(math.Round(points))
}
