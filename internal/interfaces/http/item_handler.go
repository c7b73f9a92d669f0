package http

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lager-api/internal/application/dto"
	"github.com/jhoicas/lager-api/internal/application/usecase"
)

// ItemHandler maneja las peticiones HTTP para Item y sus códigos QR.
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ítem
// @Description  Asigna un código único y genera su imagen QR.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del ítem"
// @Success      200   {object}  dto.CreatedItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /items/ [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ítems
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        active_only  query  bool    false  "Solo activos"  default(true)
// @Param        search       query  string  false  "Subcadena del nombre (sin distinguir mayúsculas)"
// @Success      200  {array}  dto.ItemResponse
// @Router       /items/ [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), dto.ListItemsRequest{
		ActiveOnly: c.QueryBool("active_only", true),
		Search:     c.Query("search"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByCode godoc
// @Summary      Obtener ítem activo por código
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código del ítem"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /items/{code} [get]
func (h *ItemHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar ítem
// @Description  Borrado definitivo, activo o no, junto con su imagen QR.
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del ítem"
// @Success      200  {object}  dto.DeletedResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidID(c, "id")
	}
	out, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Checkout godoc
// @Summary      Retirar ítem
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código del ítem"
// @Success      200  {object}  dto.CheckoutResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /items/{code}/checkout [post]
func (h *ItemHandler) Checkout(c *fiber.Ctx) error {
	out, err := h.uc.Checkout(c.UserContext(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Move godoc
// @Summary      Mover ítem
// @Description  Sin warehouse_id el ítem queda sin bodega.
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        code          path   string  true   "Código del ítem"
// @Param        warehouse_id  query  int     false  "Bodega destino"
// @Success      200  {object}  dto.MoveItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /items/{code}/move [post]
func (h *ItemHandler) Move(c *fiber.Ctx) error {
	var warehouseID *int64
	if raw := c.Query("warehouse_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return invalidID(c, "warehouse_id")
		}
		warehouseID = &id
	}
	out, err := h.uc.Move(c.UserContext(), c.Params("code"), warehouseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Label godoc
// @Summary      Etiqueta PDF del ítem
// @Tags         items
// @Security     Bearer
// @Produce      application/pdf
// @Param        code  path  string  true  "Código del ítem"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /items/{code}/label [get]
func (h *ItemHandler) Label(c *fiber.Ctx) error {
	code := c.Params("code")
	out, err := h.uc.Label(c.UserContext(), code)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="etiqueta-%s.pdf"`, code))
	c.Type("pdf")
	return c.Send(out)
}

// QRCode godoc
// @Summary      Imagen QR del ítem
// @Description  Público: se usa directamente en etiquetas <img>.
// @Tags         qrcode
// @Produce      image/png
// @Param        code  path  string  true  "Código del ítem"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /qrcode/{code} [get]
func (h *ItemHandler) QRCode(c *fiber.Ctx) error {
	rc, err := h.uc.QRCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return respondError(c, err)
	}
	c.Type("png")
	return c.Send(data)
}
