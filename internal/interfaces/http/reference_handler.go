package http

import (
	"github.com/clinivet/clinivet-api/internal/application/dto"
	"github.com/clinivet/clinivet-api/internal/application/usecase"
	"github.com/clinivet/clinivet-api/internal/domain/entity"
	"github.com/gofiber/fiber/v2"
)

// ReferenceHandler CRUD genérico de entidades de referencia nombradas.
// El :kind de la ruta selecciona la clase: brands, categories, units o generics.
type ReferenceHandler struct {
	uc *usecase.ReferenceUseCase
}

// NewReferenceHandler construye el handler.
func NewReferenceHandler(uc *usecase.ReferenceUseCase) *ReferenceHandler {
	return &ReferenceHandler{uc: uc}
}

func refKind(c *fiber.Ctx) entity.ReferenceKind {
	return entity.ReferenceKind(c.Params("kind"))
}

func presentRef(ref *entity.Reference) dto.ReferenceResponse {
	return dto.ReferenceResponse{ID: ref.ID, Name: ref.Name, Archived: ref.Archived}
}

// List godoc
// @Summary      Listar referencias de una clase
// @Tags         references
// @Produce      json
// @Param        kind      path   string  true   "brands | categories | units | generics"
// @Param        archived  query  bool    false  "incluir archivadas"
// @Success      200  {array}   dto.ReferenceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/refs/{kind} [get]
func (h *ReferenceHandler) List(c *fiber.Ctx) error {
	refs, err := h.uc.List(refKind(c), c.QueryBool("archived", false))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ReferenceResponse, 0, len(refs))
	for _, ref := range refs {
		out = append(out, presentRef(ref))
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear referencia nombrada
// @Tags         references
// @Accept       json
// @Produce      json
// @Param        kind  path  string                true  "brands | categories | units | generics"
// @Param        body  body  dto.ReferenceRequest  true  "name"
// @Success      201  {object}  dto.ReferenceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/refs/{kind} [post]
func (h *ReferenceHandler) Create(c *fiber.Ctx) error {
	var in dto.ReferenceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ref, err := h.uc.Create(refKind(c), in.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(presentRef(ref))
}

// Rename godoc
// @Summary      Renombrar referencia
// @Tags         references
// @Accept       json
// @Produce      json
// @Param        kind  path  string                true  "brands | categories | units | generics"
// @Param        id    path  int                   true  "ID"
// @Param        body  body  dto.ReferenceRequest  true  "name"
// @Success      200  {object}  dto.ReferenceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/refs/{kind}/{id} [put]
func (h *ReferenceHandler) Rename(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ReferenceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ref, err := h.uc.Rename(refKind(c), id, in.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(presentRef(ref))
}

// Archive godoc
// @Summary      Archivar referencia
// @Tags         references
// @Produce      json
// @Param        kind  path  string  true  "brands | categories | units | generics"
// @Param        id    path  int     true  "ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/refs/{kind}/{id}/archive [post]
func (h *ReferenceHandler) Archive(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.SetArchived(refKind(c), id, true); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "referencia archivada"})
}

// Restore godoc
// @Summary      Restaurar referencia archivada
// @Tags         references
// @Produce      json
// @Param        kind  path  string  true  "brands | categories | units | generics"
// @Param        id    path  int     true  "ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/refs/{kind}/{id}/restore [post]
func (h *ReferenceHandler) Restore(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.SetArchived(refKind(c), id, false); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "referencia restaurada"})
}
