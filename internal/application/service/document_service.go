package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/config"
	"github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/internal/infrastructure/pdf"
	"github.com/sangkips/backoffice-api/pkg/apperror"
	"github.com/sangkips/backoffice-api/pkg/timeutil"
	"go.uber.org/zap"
)

const pdfContentType = "application/pdf"

// Renderer prints an HTML document to PDF.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// ObjectStore uploads a file and returns the URL it is served from.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// DocumentService renders invoice PDFs and archives them to object storage.
type DocumentService struct {
	invoiceRepo repository.InvoiceRepository
	renderer    Renderer
	store       ObjectStore
	company     config.CompanyConfig
	logger      *zap.Logger
}

// NewDocumentService creates a new document service. store may be nil when
// object storage is not configured; archiving then reports 503.
func NewDocumentService(
	invoiceRepo repository.InvoiceRepository,
	renderer Renderer,
	store ObjectStore,
	company config.CompanyConfig,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		invoiceRepo: invoiceRepo,
		renderer:    renderer,
		store:       store,
		company:     company,
		logger:      logger,
	}
}

// RenderedDocument is a generated PDF and its download name.
type RenderedDocument struct {
	Filename string
	Content  []byte
}

// RenderInvoicePDF renders an invoice to PDF.
func (s *DocumentService) RenderInvoicePDF(ctx context.Context, id uuid.UUID) (*RenderedDocument, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	html, err := pdf.NewInvoiceDocument(invoice, s.company).HTML()
	if err != nil {
		return nil, err
	}
	content, err := s.renderer.Render(ctx, html)
	if err != nil {
		s.logger.Error("invoice pdf rendering failed", zap.String("invoice_id", id.String()), zap.Error(err))
		return nil, apperror.NewServiceUnavailableError("PDF rendering is unavailable")
	}

	return &RenderedDocument{
		Filename: invoiceFileStem(invoice.InvoiceNumber) + ".pdf",
		Content:  content,
	}, nil
}

// ArchiveInvoicePDF renders the invoice, uploads it and records the URL on
// the invoice.
func (s *DocumentService) ArchiveInvoicePDF(ctx context.Context, id uuid.UUID) (string, error) {
	if s.store == nil {
		return "", apperror.NewServiceUnavailableError("Document storage is not configured")
	}

	doc, err := s.RenderInvoicePDF(ctx, id)
	if err != nil {
		return "", err
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if invoice == nil {
		return "", apperror.NewNotFoundError("Invoice")
	}

	date := timeutil.ToIST(invoice.InvoiceDate)
	key := fmt.Sprintf("invoices/%s/%04d/%02d/%s", invoice.InvoiceType, date.Year(), int(date.Month()), doc.Filename)

	url, err := s.store.Put(ctx, key, pdfContentType, doc.Content)
	if err != nil {
		s.logger.Error("invoice pdf upload failed", zap.String("invoice_id", id.String()), zap.String("key", key), zap.Error(err))
		return "", apperror.NewServiceUnavailableError("Could not archive the invoice PDF")
	}

	if err := s.invoiceRepo.SetPDFURL(ctx, id, url); err != nil {
		return "", err
	}

	s.logger.Info("invoice pdf archived", zap.String("invoice_id", id.String()), zap.String("url", url))
	return url, nil
}

// invoiceFileStem turns "MECH/DEC001" into "MECH-DEC001".
func invoiceFileStem(number string) string {
	stem := strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, strings.TrimSpace(number))
	if stem == "" {
		return "invoice"
	}
	return stem
}
