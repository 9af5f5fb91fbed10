// Package pdfthumb generates thumbnail images for PDF files using the pdfium
// rendering engine, executed through an embedded WebAssembly runtime so no cgo
// or system libraries are required.
//
// Basic usage:
//
//	pdf, err := pdfthumb.Open("test.pdf")
//	if err != nil {
//		log.Fatal(err)
//	}
//	thumb, err := pdf.Thumb() // PNG is default.
//	if err != nil {
//		log.Fatal(err)
//	}
//	os.WriteFile("thumb.png", thumb, 0644)
//
// Some options are also available:
//
//	options := pdfthumb.Options{
//		Width:  320,            // Set thumbnail image width.
//		Format: pdfthumb.Jpeg,  // Set thumbnail image format.
//	}
//	thumb, err := pdf.ThumbWithOptions(options)
//
// Every operation that touches the engine also has an Async variant returning a
// completion token, so callers can overlap renders or wait with a context:
//
//	op := pdf.ThumbWithOptionsAsync(options)
//	thumb, err := op.Wait(ctx)
package pdfthumb
