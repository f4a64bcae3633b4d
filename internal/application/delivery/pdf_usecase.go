package delivery

import (
	"context"
	"fmt"

	"github.com/jhoicas/entregas-epp/internal/domain"
	"github.com/jhoicas/entregas-epp/internal/domain/entity"
	"github.com/jhoicas/entregas-epp/internal/domain/repository"
)

// PDFLine línea de la entrega con el nombre legible del equipo y la talla.
type PDFLine struct {
	entity.DeliveryLineItem
	EquipmentName string
	VariantLabel  string
}

// DeliveryPDFGenerator genera el acta de entrega de EPP (firmada por el trabajador).
type DeliveryPDFGenerator interface {
	GenerateDeliveryPDF(ctx context.Context, d *entity.Delivery, lines []PDFLine) ([]byte, error)
}

// PDFUseCase genera el acta de entrega en PDF de una entrega activa.
type PDFUseCase struct {
	deliveryRepo repository.DeliveryRepository
	stockRepo    repository.EquipmentStockRepository
	generator    DeliveryPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	deliveryRepo repository.DeliveryRepository,
	stockRepo repository.EquipmentStockRepository,
	generator DeliveryPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{deliveryRepo: deliveryRepo, stockRepo: stockRepo, generator: generator}
}

// DownloadDeliveryPDF retorna (pdfBytes, filename). domain.ErrNotFound si la entrega no existe.
// Equipos que ya no estén en el catálogo se imprimen con su ID.
func (uc *PDFUseCase) DownloadDeliveryPDF(ctx context.Context, deliveryID string) ([]byte, string, error) {
	d, err := uc.deliveryRepo.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener entrega: %w", err)
	}
	if d == nil {
		return nil, "", domain.ErrNotFound
	}

	ids := make([]string, 0, len(d.Items))
	for _, it := range d.Items {
		ids = append(ids, it.EquipmentID)
	}
	stocks, err := uc.stockRepo.GetMany(ctx, ids)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener equipos: %w", err)
	}

	lines := make([]PDFLine, 0, len(d.Items))
	for _, it := range d.Items {
		line := PDFLine{DeliveryLineItem: it, EquipmentName: it.EquipmentID, VariantLabel: it.VariantID}
		if s := stocks[it.EquipmentID]; s != nil {
			if s.Name != "" {
				line.EquipmentName = s.Name
			}
			if v, ok := s.Variant(it.VariantID); ok && v.Label != "" {
				line.VariantLabel = v.Label
			}
		}
		lines = append(lines, line)
	}

	pdfBytes, err := uc.generator.GenerateDeliveryPDF(ctx, d, lines)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, fmt.Sprintf("entrega-epp-%s.pdf", d.ID), nil
}
