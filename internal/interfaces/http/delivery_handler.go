package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/entregas-epp/internal/application/delivery"
	"github.com/jhoicas/entregas-epp/internal/application/dto"
	"github.com/jhoicas/entregas-epp/internal/domain/repository"
)

// DeliveryHandler maneja las peticiones HTTP de entregas de EPP (protegido).
type DeliveryHandler struct {
	uc    *delivery.UseCase
	pdfUC *delivery.PDFUseCase
	log   zerolog.Logger
}

// NewDeliveryHandler construye el handler.
func NewDeliveryHandler(uc *delivery.UseCase, pdfUC *delivery.PDFUseCase, log zerolog.Logger) *DeliveryHandler {
	return &DeliveryHandler{uc: uc, pdfUC: pdfUC, log: log}
}

// Create godoc
// @Summary      Registrar entrega de EPP
// @Description  Descuenta el stock de cada línea y guarda la entrega en una sola transacción.
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.DeliveryRequest  true  "Trabajador, fecha y líneas (equipo, talla, cantidad, costo)"
// @Success      201   {object}  dto.DeliveryMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/deliveries [post]
func (h *DeliveryHandler) Create(c *fiber.Ctx) error {
	var in dto.DeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.CreateFromRequest(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(delivery.MutationResponse(res))
}

// Update godoc
// @Summary      Editar entrega de EPP
// @Description  Reemplaza líneas y datos; solo se aplica al stock la diferencia con la versión guardada.
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "ID de la entrega"
// @Param        body  body      dto.DeliveryRequest  true  "Entrega completa (las líneas reemplazan a las anteriores)"
// @Success      200   {object}  dto.DeliveryMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [put]
func (h *DeliveryHandler) Update(c *fiber.Ctx) error {
	var in dto.DeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.UpdateFromRequest(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(delivery.MutationResponse(res))
}

// Delete godoc
// @Summary      Eliminar entrega de EPP
// @Description  Devuelve al stock todo lo consumido por la entrega y la elimina.
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la entrega"
// @Success      200  {object}  dto.DeliveryMutationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [delete]
func (h *DeliveryHandler) Delete(c *fiber.Ctx) error {
	res, err := h.uc.DeleteFromRequest(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(delivery.MutationResponse(res))
}

// GetByID godoc
// @Summary      Detalle de una entrega
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la entrega"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [get]
func (h *DeliveryHandler) GetByID(c *fiber.Ctx) error {
	d, err := h.uc.GetDelivery(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.DeliveryFromEntity(d))
}

// List godoc
// @Summary      Listar entregas
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        worker_id  query  string  false  "Filtrar por trabajador"
// @Param        area       query  string  false  "Filtrar por área"
// @Param        from       query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to         query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Param        limit      query  int     false  "Máximo 100"
// @Param        offset     query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.DeliveryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/deliveries [get]
func (h *DeliveryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	filter := repository.DeliveryFilter{
		WorkerID: c.Query("worker_id"),
		Area:     c.Query("area"),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser YYYY-MM-DD"})
		}
		filter.From = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser YYYY-MM-DD"})
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}

	list, err := h.uc.ListDeliveries(c.Context(), filter)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := make([]*dto.DeliveryResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.DeliveryFromEntity(d))
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Acta de entrega en PDF
// @Tags         deliveries
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la entrega"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/pdf [get]
func (h *DeliveryHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdfUC.DownloadDeliveryPDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
