package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/marketplace-backend/internal/repository"
	"github.com/shinyyama/marketplace-backend/internal/service"
	"github.com/shinyyama/marketplace-backend/internal/storage"
	"github.com/stretchr/testify/require"
)

type stubItemService struct {
	createID  uint64
	createErr error
	lastInput service.CreateItemInput
	rows      []repository.ItemListing
	listErr   error
}

func (s *stubItemService) Create(_ context.Context, in service.CreateItemInput) (uint64, error) {
	s.lastInput = in
	return s.createID, s.createErr
}

func (s *stubItemService) List(_ context.Context) ([]repository.ItemListing, error) {
	return s.rows, s.listErr
}

func multipartRequest(t *testing.T, fields map[string]string, imageName string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if imageName != "" {
		fw, err := w.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = fw.Write([]byte("image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/add_item", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func itemFields() map[string]string {
	return map[string]string{
		"user_id":     "2",
		"item_name":   "lamp",
		"description": "desk lamp",
		"price":       "12.50",
	}
}

func TestCreateItem(t *testing.T) {
	svc := &stubItemService{createID: 7}
	h := NewItemHandler(svc, storage.NewImageStore(t.TempDir(), []string{"jpg"}))

	e := echo.New()
	rec := httptest.NewRecorder()
	req := multipartRequest(t, itemFields(), "photo.jpg")
	require.NoError(t, h.Create(e.NewContext(req, rec)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp ItemCreatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, uint64(7), resp.ItemID)
	require.Equal(t, "Item added successfully with image", resp.Message)

	require.Equal(t, "2", svc.lastInput.UserID)
	require.Equal(t, "lamp", svc.lastInput.Name)
	require.Equal(t, "desk lamp", svc.lastInput.Description)
	require.Equal(t, "12.50", svc.lastInput.Price)
	require.NotNil(t, svc.lastInput.Image)
	require.Equal(t, "photo.jpg", svc.lastInput.Image.Filename)
}

func TestCreateItemMissingImagePart(t *testing.T) {
	svc := &stubItemService{createID: 7, createErr: service.ErrNoImage}
	h := NewItemHandler(svc, storage.NewImageStore(t.TempDir(), []string{"jpg"}))

	e := echo.New()
	rec := httptest.NewRecorder()
	req := multipartRequest(t, itemFields(), "")
	require.NoError(t, h.Create(e.NewContext(req, rec)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "No image file found", message(t, rec))
	require.Nil(t, svc.lastInput.Image)
}

func TestCreateItemErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		svcErr      error
		wantCode    int
		wantMessage string
	}{
		{"missing fields", service.ErrMissingFields, http.StatusBadRequest, "User ID, Item name, description, and price are required"},
		{"bad price", service.ErrInvalidPrice, http.StatusBadRequest, "Price must be a valid number"},
		{"bad owner", service.ErrInvalidOwner, http.StatusBadRequest, "User ID must be a valid number"},
		{"bad image type", service.ErrBadImageType, http.StatusBadRequest, "Invalid image format. Only jpg, jpeg, or png allowed"},
		{"db not ready", repository.ErrDBNotReady, http.StatusServiceUnavailable, "Database connection error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewItemHandler(&stubItemService{createErr: tt.svcErr}, storage.NewImageStore(t.TempDir(), []string{"jpg"}))
			e := echo.New()
			rec := httptest.NewRecorder()
			req := multipartRequest(t, itemFields(), "photo.jpg")
			require.NoError(t, h.Create(e.NewContext(req, rec)))
			require.Equal(t, tt.wantCode, rec.Code)
			require.Equal(t, tt.wantMessage, message(t, rec))
		})
	}
}

func TestListItems(t *testing.T) {
	path := "/images/1.jpg"
	svc := &stubItemService{rows: []repository.ItemListing{
		{ItemID: 1, ItemName: "lamp", Description: "desk lamp", Price: 12.50, LoginID: 2, ImagePath: &path, Username: "alice", Email: "alice@example.com"},
		{ItemID: 4, ItemName: "mug", Description: "blue mug", Price: 3, LoginID: 2, Username: "alice", Email: "alice@example.com"},
	}}
	h := NewItemHandler(svc, storage.NewImageStore(t.TempDir(), []string{"jpg"}))

	e := echo.New()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	require.NoError(t, h.List(e.NewContext(req, rec)))

	require.Equal(t, http.StatusOK, rec.Code)
	var rows []ItemRowResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	require.Equal(t, "alice", rows[0].Username)
	require.Equal(t, path, *rows[0].ImagePath)
	require.Nil(t, rows[1].ImagePath)
}

func TestListItemsEmpty(t *testing.T) {
	h := NewItemHandler(&stubItemService{}, storage.NewImageStore(t.TempDir(), []string{"jpg"}))

	e := echo.New()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	require.NoError(t, h.List(e.NewContext(req, rec)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func imageContext(e *echo.Echo, id string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/item/"+id+"/image", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/item/:id/image")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func TestGetItemImage(t *testing.T) {
	images := storage.NewImageStore(t.TempDir(), []string{"jpg"})
	require.NoError(t, images.Save(5, strings.NewReader("stored image")))
	h := NewItemHandler(&stubItemService{}, images)
	e := echo.New()

	c, rec := imageContext(e, "5")
	require.NoError(t, h.Image(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "stored image", rec.Body.String())
	require.Contains(t, rec.Header().Get(echo.HeaderContentType), "image/jpeg")
}

func TestGetItemImageNotFound(t *testing.T) {
	h := NewItemHandler(&stubItemService{}, storage.NewImageStore(t.TempDir(), []string{"jpg"}))
	e := echo.New()

	// an item without an image and an unknown item answer identically
	for _, id := range []string{"99", "abc"} {
		c, rec := imageContext(e, id)
		require.NoError(t, h.Image(c))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "Image not found", message(t, rec))
	}
}
