package pdfthumb

import (
	"sync"

	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
)

// Size describes a page's intrinsic dimensions in points.
type Size struct {
	Width  float64
	Height float64
}

// Page is one renderable unit of a Document, obtained by zero-based index. It
// exclusively owns one engine page handle, which must be released with Close
// when no longer needed.
//
// A Page is only valid while its Document is reachable. Handles are safe to
// move between goroutines but must not be used by two operations at the same
// time; the engine does not verify this.
type Page struct {
	doc       *Document
	ref       references.FPDF_PAGE
	index     uint32
	closeOnce sync.Once
}

// Index returns the zero-based page index.
func (p *Page) Index() uint32 {
	return p.index
}

// Size returns the page's intrinsic width and height in points.
func (p *Page) Size() (Size, error) {
	resp, err := p.doc.instance.GetPageSize(&requests.GetPageSize{
		Page: p.enginePage(),
	})
	if err != nil {
		return Size{}, platformError("unable to get page size", err)
	}
	return Size{Width: resp.Width, Height: resp.Height}, nil
}

// AspectRatio returns the page's width divided by its height. A degenerate
// page reporting zero height yields +Inf.
func (p *Page) AspectRatio() (float64, error) {
	size, err := p.Size()
	if err != nil {
		return 0, err
	}
	return size.Width / size.Height, nil
}

// SizeInPixels returns the page size in pixels at the given DPI.
func (p *Page) SizeInPixels(dpi float64) (width, height int, err error) {
	size, err := p.Size()
	if err != nil {
		return 0, 0, err
	}
	width = int(size.Width * dpi / 72)
	height = int(size.Height * dpi / 72)
	return width, height, nil
}

// Close releases the engine page handle. It is safe to call more than once and
// from any exit path; release failures are logged and swallowed, since no
// caller can act on them.
func (p *Page) Close() {
	p.closeOnce.Do(func() {
		_, err := p.doc.instance.FPDF_ClosePage(&requests.FPDF_ClosePage{
			Page: p.ref,
		})
		if err != nil {
			Logger.Debug("unable to close page", "page", p.index, "error", err)
		}
	})
}

func (p *Page) enginePage() requests.Page {
	return requests.Page{ByReference: &p.ref}
}
