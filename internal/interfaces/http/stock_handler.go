package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mvalderrama/inventario-api/internal/application/dto"
	"github.com/mvalderrama/inventario-api/internal/application/inventory"
	"github.com/mvalderrama/inventario-api/internal/domain/entity"
)

// StockHandler maneja movimientos y ajustes de stock (protegido).
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock (entrada/salida/ajuste)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.ApplyMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	productID := c.Params("id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.RegisterMovementRequest
	if !validateBody(c, &in) {
		return nil
	}
	result, err := h.uc.ApplyMovement(c.UserContext(), inventory.MovementInput{
		ProductID: productID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Actor:     GetUsername(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ApplyMovementResponse{
		Movement: toMovementResponse(result.Movement),
		NewStock: result.Product.Stock,
	})
}

// ListMovements godoc
// @Summary      Listar movimientos de un producto (más recientes primero)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del producto"
// @Param        limit  query  int     false  "Límite"  default(10)
// @Success      200    {array}   dto.MovementResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	productID := c.Params("id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	limit := c.QueryInt("limit", 10)
	movements, err := h.uc.ListMovements(productID, limit)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		resp = append(resp, toMovementResponse(m))
	}
	return c.JSON(resp)
}

// AdjustStock godoc
// @Summary      Fijar el stock de un producto en una cantidad absoluta
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "Cantidad absoluta"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [post]
func (h *StockHandler) AdjustStock(c *fiber.Ctx) error {
	productID := c.Params("id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.AdjustStockRequest
	if !validateBody(c, &in) {
		return nil
	}
	result, err := h.uc.SetStock(c.UserContext(), inventory.SetStockInput{
		ProductID:   productID,
		NewQuantity: in.Quantity,
		Reason:      in.Reason,
		Actor:       GetUsername(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	resp := dto.AdjustStockResponse{
		NewStock: result.Product.Stock,
		Delta:    result.Delta,
	}
	if result.Movement != nil {
		m := toMovementResponse(result.Movement)
		resp.Movement = &m
	}
	return c.JSON(resp)
}

// ListLowStock godoc
// @Summary      Listar productos con stock bajo el umbral de reposición
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(100)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products/low-stock [get]
func (h *StockHandler) ListLowStock(c *fiber.Ctx) error {
	products, err := h.uc.ListLowStock(c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, dto.ProductResponse{
			ID:           p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			Description:  p.Description,
			Price:        p.Price,
			Stock:        p.Stock,
			MinStock:     p.MinStock,
			NeedsReorder: p.NeedsReorder(),
			CreatedAt:    p.CreatedAt,
			UpdatedAt:    p.UpdatedAt,
		})
	}
	return c.JSON(resp)
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Date:      m.Date,
		Reason:    m.Reason,
		CreatedBy: m.CreatedBy,
	}
}
