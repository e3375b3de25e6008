package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/marketplace-backend/internal/repository"
	"github.com/shinyyama/marketplace-backend/internal/service"
	"github.com/shinyyama/marketplace-backend/internal/storage"
)

type ItemHandler struct {
	svc    service.ItemService
	images *storage.ImageStore
}

func NewItemHandler(svc service.ItemService, images *storage.ImageStore) *ItemHandler {
	return &ItemHandler{svc: svc, images: images}
}

type ItemCreatedResponse struct {
	Message string `json:"message"`
	ItemID  uint64 `json:"item_id"`
}

type ItemRowResponse struct {
	ItemID      uint64  `json:"item_id"`
	ItemName    string  `json:"item_name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	LoginID     uint64  `json:"login_id"`
	ImagePath   *string `json:"image_path"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
}

func (h *ItemHandler) Create(c echo.Context) error {
	in := service.CreateItemInput{
		UserID:      c.FormValue("user_id"),
		Name:        c.FormValue("item_name"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
	}
	if file, err := c.FormFile("image"); err == nil {
		in.Image = file
	}

	id, err := h.svc.Create(c.Request().Context(), in)
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, ItemCreatedResponse{Message: "Item added successfully with image", ItemID: id})
	case errors.Is(err, service.ErrMissingFields):
		return c.JSON(http.StatusBadRequest, NewMessageResponse("User ID, Item name, description, and price are required"))
	case errors.Is(err, service.ErrInvalidPrice):
		return c.JSON(http.StatusBadRequest, NewMessageResponse("Price must be a valid number"))
	case errors.Is(err, service.ErrInvalidOwner):
		return c.JSON(http.StatusBadRequest, NewMessageResponse("User ID must be a valid number"))
	case errors.Is(err, service.ErrNoImage):
		return c.JSON(http.StatusBadRequest, NewMessageResponse("No image file found"))
	case errors.Is(err, service.ErrBadImageType):
		return c.JSON(http.StatusBadRequest, NewMessageResponse("Invalid image format. Only jpg, jpeg, or png allowed"))
	case errors.Is(err, repository.ErrDBNotReady):
		return c.JSON(http.StatusServiceUnavailable, NewMessageResponse("Database connection error"))
	default:
		return c.JSON(http.StatusInternalServerError, NewMessageResponse("Database error: "+err.Error()))
	}
}

func (h *ItemHandler) List(c echo.Context) error {
	rows, err := h.svc.List(c.Request().Context())
	if err != nil {
		if errors.Is(err, repository.ErrDBNotReady) {
			return c.JSON(http.StatusServiceUnavailable, NewMessageResponse("Database connection error"))
		}
		return c.JSON(http.StatusInternalServerError, NewMessageResponse("Database error: "+err.Error()))
	}
	resp := make([]ItemRowResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, ItemRowResponse{
			ItemID:      row.ItemID,
			ItemName:    row.ItemName,
			Description: row.Description,
			Price:       row.Price,
			LoginID:     row.LoginID,
			ImagePath:   row.ImagePath,
			Username:    row.Username,
			Email:       row.Email,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// Image answers from the filesystem alone; no database lookup happens, so an
// unknown item id and an item that never got an image look identical here.
func (h *ItemHandler) Image(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || !h.images.Exists(id) {
		return c.JSON(http.StatusNotFound, NewMessageResponse("Image not found"))
	}
	return c.File(h.images.Path(id))
}
