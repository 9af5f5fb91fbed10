package pdfthumb

import (
	"bytes"
	"context"
	"image"
	"os"
	"runtime"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
)

// Document is a loaded PDF document, the root object from which pages are
// obtained. It owns one engine document handle, released when the Document
// becomes unreachable; there is no explicit close. The engine worker itself
// is shared by all Documents.
//
// A Document may serve multiple Pages and multiple concurrent renders. Calls
// into the engine are dispatched through the owned worker, which the engine
// serializes; the wrapper assumes, rather than verifies, that handles are safe
// for concurrent read access.
type Document struct {
	instance pdfium.Pdfium
	ref      references.FPDF_DOCUMENT

	mu        sync.Mutex
	pageCount int
}

// Load loads a PDF document from memory.
func Load(pdf []byte) (*Document, error) {
	instance, err := engine()
	if err != nil {
		return nil, err
	}
	doc, err := instance.OpenDocument(&requests.OpenDocument{
		File: &pdf,
	})
	if err != nil {
		return nil, platformError("unable to load PDF document", err)
	}
	d := &Document{instance: instance, ref: doc.Document}
	runtime.SetFinalizer(d, (*Document).release)
	Logger.Debug("document loaded", "bytes", len(pdf))
	return d, nil
}

// Open loads a PDF document from a path, blocking until it is ready.
func Open(path string) (*Document, error) {
	return OpenAsync(path).Wait(context.Background())
}

// OpenAsync starts loading a PDF document from a path and returns a completion
// token. Open and OpenAsync share one loading path: read the whole file, then
// load from memory.
func OpenAsync(path string) *OpenOperation {
	op := &OpenOperation{id: newOperationID(), done: make(chan struct{})}
	go func() {
		Logger.Debug("open started", "op", op.id, "path", path)
		file, err := os.ReadFile(path)
		if err != nil {
			Logger.Debug("open failed", "op", op.id, "error", err)
			op.resolve(nil, ioError("unable to read PDF file", err))
			return
		}
		doc, err := Load(file)
		if err != nil {
			Logger.Debug("open failed", "op", op.id, "error", err)
			op.resolve(nil, err)
			return
		}
		Logger.Debug("open complete", "op", op.id)
		op.resolve(doc, nil)
	}()
	return op
}

// release returns the document handle to the engine. Runs at most once, from
// the finalizer. The shared worker instance stays alive.
func (d *Document) release() {
	if _, err := d.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: d.ref,
	}); err != nil {
		Logger.Debug("unable to close document", "error", err)
	}
}

// PageCount returns the number of pages in the document. The count is cached
// after the first successful query.
func (d *Document) PageCount() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pageCount > 0 {
		return d.pageCount, nil
	}
	resp, err := d.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: d.ref,
	})
	if err != nil {
		return 0, platformError("unable to get page count", err)
	}
	d.pageCount = resp.PageCount
	return d.pageCount, nil
}

// GetPage looks up a page by zero-based index. The returned Page must be
// closed when no longer needed, and the Document must stay reachable for as
// long as the Page is in use.
func (d *Document) GetPage(index uint32) (*Page, error) {
	resp, err := d.instance.FPDF_LoadPage(&requests.FPDF_LoadPage{
		Document: d.ref,
		Index:    int(index),
	})
	if err != nil {
		return nil, platformError("unable to load page", err)
	}
	return &Page{doc: d, ref: resp.Page, index: index}, nil
}

// Thumb generates a thumbnail image of the first page with default options.
func (d *Document) Thumb() ([]byte, error) {
	return d.ThumbWithOptions(Options{})
}

// ThumbWithOptions generates a thumbnail image with the specified options,
// blocking until the image is encoded.
func (d *Document) ThumbWithOptions(options Options) ([]byte, error) {
	return d.ThumbWithOptionsAsync(options).Wait(context.Background())
}

// ThumbAsync starts rendering the first page with default options.
func (d *Document) ThumbAsync() *RenderOperation {
	return d.ThumbWithOptionsAsync(Options{})
}

// ThumbWithOptionsAsync starts a render and returns its completion token.
// Blocking and suspending callers share this single issuance path. Each call
// is a fresh, independent attempt; failures are terminal and nothing partial
// is ever returned.
func (d *Document) ThumbWithOptionsAsync(options Options) *RenderOperation {
	op := &RenderOperation{id: newOperationID(), done: make(chan struct{})}
	go func() {
		Logger.Debug("render started",
			"op", op.id, "page", options.Page, "format", options.Format)
		buf, err := d.renderPage(options)
		if err != nil {
			Logger.Debug("render failed", "op", op.id, "error", err)
		} else {
			Logger.Debug("render complete", "op", op.id, "bytes", len(buf))
		}
		op.resolve(buf, err)
	}()
	return op
}

// renderPage runs the whole render sequence for one call: load the page,
// translate options, rasterize, crop and resize, encode. The page handle is
// released on every exit path.
func (d *Document) renderPage(options Options) ([]byte, error) {
	page, err := d.GetPage(options.Page)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	size, err := page.Size()
	if err != nil {
		return nil, err
	}
	plan, err := options.plan(size.Width, size.Height)
	if err != nil {
		return nil, err
	}

	render, err := d.instance.RenderPageInPixels(&requests.RenderPageInPixels{
		Page:   page.enginePage(),
		Width:  plan.renderWidth,
		Height: plan.renderHeight,
	})
	if err != nil {
		return nil, platformError("unable to render page", err)
	}
	defer render.Cleanup()

	var img image.Image = render.Result.Image
	if plan.crop != (image.Rectangle{}) {
		img = imaging.Crop(img, plan.crop)
	}
	if plan.targetWidth > 0 || plan.targetHeight > 0 {
		bounds := img.Bounds()
		if bounds.Dx() != plan.targetWidth || bounds.Dy() != plan.targetHeight {
			img = imaging.Resize(img, plan.targetWidth, plan.targetHeight, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, plan.encoder); err != nil {
		return nil, platformError("unable to encode image", err)
	}
	return buf.Bytes(), nil
}
