package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"homeneeds/internal/model"
	"homeneeds/internal/service"
)

// ItemHandler handles checklist item endpoints.
type ItemHandler struct {
	itemService service.ItemService
	undoService service.UndoService
}

// NewItemHandler creates a new item handler.
func NewItemHandler(itemService service.ItemService, undoService service.UndoService) *ItemHandler {
	return &ItemHandler{itemService: itemService, undoService: undoService}
}

// CreateItemRequest represents a new checklist item.
type CreateItemRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Category string `json:"category" validate:"required"`
}

// DeleteItemResponse identifies the tombstone created by a delete, for the
// client's undo affordance.
type DeleteItemResponse struct {
	DeletedID uint   `json:"deleted_id"`
	ItemName  string `json:"item_name"`
}

func itemIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// List godoc
// @Summary List items in a category
// @Tags items
// @Produce json
// @Param category path string true "Category (vegfruit or grocery)"
// @Success 200 {array} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /items/{category} [get]
func (h *ItemHandler) List(c echo.Context) error {
	ownerID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	items, err := h.itemService.List(c.Request().Context(), ownerID, model.Category(c.Param("category")))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Create godoc
// @Summary Create an item
// @Tags items
// @Accept json
// @Produce json
// @Param request body CreateItemRequest true "Item data"
// @Success 201 {object} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	ownerID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.itemService.Create(c.Request().Context(), ownerID, req.Name, model.Category(req.Category))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

// ToggleProcure godoc
// @Summary Toggle an item's to-procure flag
// @Tags items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} model.Item
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /items/{id}/toggle-procure [put]
func (h *ItemHandler) ToggleProcure(c echo.Context) error {
	ownerID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	itemID, err := itemIDParam(c, "id")
	if err != nil {
		return err
	}

	item, err := h.itemService.ToggleProcure(c.Request().Context(), ownerID, itemID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// ToggleConsumed godoc
// @Summary Toggle an item's consumed flag
// @Tags items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} model.Item
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /items/{id}/toggle-consumed [put]
func (h *ItemHandler) ToggleConsumed(c echo.Context) error {
	ownerID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	itemID, err := itemIDParam(c, "id")
	if err != nil {
		return err
	}

	item, err := h.itemService.ToggleConsumed(c.Request().Context(), ownerID, itemID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// Delete godoc
// @Summary Delete an item (recoverable)
// @Tags items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} DeleteItemResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /items/{id} [delete]
func (h *ItemHandler) Delete(c echo.Context) error {
	ownerID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	itemID, err := itemIDParam(c, "id")
	if err != nil {
		return err
	}

	tombstone, err := h.undoService.Delete(c.Request().Context(), ownerID, itemID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, DeleteItemResponse{
		DeletedID: tombstone.ID,
		ItemName:  tombstone.Name,
	})
}

// Undo godoc
// @Summary Undo a delete
// @Tags items
// @Produce json
// @Param deleted_id path int true "Tombstone ID returned by delete"
// @Success 200 {object} model.Item
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /items/undo/{deleted_id} [post]
func (h *ItemHandler) Undo(c echo.Context) error {
	ownerID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	deletedID, err := itemIDParam(c, "deleted_id")
	if err != nil {
		return err
	}

	item, err := h.undoService.Undo(c.Request().Context(), ownerID, deletedID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, item)
}
