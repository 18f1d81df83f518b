package pdf

import (
	"bytes"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// Converter turns an HTML document into a PDF byte stream.
type Converter interface {
	Convert(html []byte) ([]byte, error)
}

// WKHTMLToPDF converts via the wkhtmltopdf binary, the same external
// collaborator shape the bill renderer expects: all-or-nothing, no partial
// output on failure.
type WKHTMLToPDF struct{}

// NewWKHTMLToPDF points the library at binPath when set; otherwise the
// binary is resolved from $PATH.
func NewWKHTMLToPDF(binPath string) *WKHTMLToPDF {
	if binPath != "" {
		wkhtmltopdf.SetPath(binPath)
	}
	return &WKHTMLToPDF{}
}

func (w *WKHTMLToPDF) Convert(html []byte) ([]byte, error) {
	gen, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, err
	}
	gen.Dpi.Set(96)
	gen.AddPage(wkhtmltopdf.NewPageReader(bytes.NewReader(html)))
	if err := gen.Create(); err != nil {
		return nil, err
	}
	return gen.Bytes(), nil
}
