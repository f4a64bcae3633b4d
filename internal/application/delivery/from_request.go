package delivery

import (
	"context"

	"github.com/jhoicas/entregas-epp/internal/application/dto"
	"github.com/jhoicas/entregas-epp/internal/domain/entity"
)

// CreateFromRequest adapta el request HTTP a Create. userID es el usuario del token;
// se usa como autorizador si el body no trae uno.
func (uc *UseCase) CreateFromRequest(ctx context.Context, userID string, in dto.DeliveryRequest) (*Result, error) {
	items, meta := fromRequest(userID, in)
	return uc.Create(ctx, items, meta)
}

// UpdateFromRequest adapta el request HTTP a Update.
func (uc *UseCase) UpdateFromRequest(ctx context.Context, userID, id string, in dto.DeliveryRequest) (*Result, error) {
	items, meta := fromRequest(userID, in)
	return uc.Update(ctx, id, items, meta)
}

// DeleteFromRequest elimina la entrega registrando al usuario del token como autor de las devoluciones.
func (uc *UseCase) DeleteFromRequest(ctx context.Context, userID, id string) (*Result, error) {
	return uc.deleteAs(ctx, id, userID)
}

// MutationResponse arma la respuesta HTTP de una mutación.
func MutationResponse(res *Result) dto.DeliveryMutationResponse {
	out := dto.DeliveryMutationResponse{DeliveryID: res.DeliveryID, Alerts: make([]dto.StockAlertDTO, 0, len(res.Alerts))}
	for _, a := range res.Alerts {
		out.Alerts = append(out.Alerts, dto.StockAlertDTO{
			EquipmentID:    a.EquipmentID,
			VariantID:      a.VariantID,
			QuantityOnHand: a.QuantityOnHand,
			Level:          string(a.Level),
		})
	}
	return out
}

func fromRequest(userID string, in dto.DeliveryRequest) ([]entity.DeliveryLineItem, entity.DeliveryMetadata) {
	items := make([]entity.DeliveryLineItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.DeliveryLineItem{
			EquipmentID: it.EquipmentID,
			VariantID:   it.VariantID,
			Quantity:    it.Quantity,
			UnitCost:    it.UnitCost,
		})
	}
	meta := entity.DeliveryMetadata{
		WorkerID:     in.WorkerID,
		WorkerName:   in.WorkerName,
		Area:         in.Area,
		Position:     in.Position,
		AuthorizedBy: in.AuthorizedBy,
		Notes:        in.Notes,
	}
	if in.DeliveryDate != nil {
		meta.DeliveryDate = *in.DeliveryDate
	}
	if meta.AuthorizedBy == "" {
		meta.AuthorizedBy = userID
	}
	return items, meta
}
