package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"greenbasket/internal/domain"
	"greenbasket/internal/pdf"
)

// ErrRender marks a failed HTML-to-PDF conversion. Handlers surface it as a
// 400 with a plain-text body; no partial PDF is ever returned.
var ErrRender = errors.New("pdf conversion failed")

// TemplateRenderer is satisfied by the fiber views engine shared with the
// HTTP layer, so the bill uses the same template set as the pages.
type TemplateRenderer interface {
	Render(w io.Writer, name string, bind interface{}, layout ...string) error
}

type BillingService struct {
	Cart  *CartService
	Views TemplateRenderer
	PDF   pdf.Converter
}

func NewBillingService(cart *CartService, views TemplateRenderer, conv pdf.Converter) *BillingService {
	return &BillingService{Cart: cart, Views: views, PDF: conv}
}

// RenderBill snapshots the user's cart, renders the bill template to HTML and
// converts it to a PDF byte stream. Regenerated on every call; no caching.
func (s *BillingService) RenderBill(u *domain.User) ([]byte, error) {
	cv, err := s.Cart.View(u.ID)
	if err != nil {
		return nil, err
	}

	data := map[string]any{
		"Name":  u.Name,
		"Email": u.Email,
		"Lines": cv.Lines,
		"Total": cv.Total.StringFixed(2),
		"Date":  time.Now().Format("Jan 2, 2006"),
	}
	var html bytes.Buffer
	if err := s.Views.Render(&html, "bill", data); err != nil {
		return nil, err
	}

	out, err := s.PDF.Convert(html.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return out, nil
}
