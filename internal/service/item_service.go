package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/shinyyama/marketplace-backend/internal/model"
	"github.com/shinyyama/marketplace-backend/internal/repository"
	"github.com/shinyyama/marketplace-backend/internal/storage"
)

var (
	ErrInvalidPrice = errors.New("price must be a valid number")
	ErrInvalidOwner = errors.New("user id must be a valid number")
	ErrNoImage      = errors.New("no image file found")
	ErrBadImageType = errors.New("invalid image format")
)

// CreateItemInput carries the multipart form fields as received. Text fields
// stay strings so the service owns all parsing.
type CreateItemInput struct {
	UserID      string
	Name        string
	Description string
	Price       string
	Image       *multipart.FileHeader
}

type ItemService interface {
	Create(ctx context.Context, in CreateItemInput) (uint64, error)
	List(ctx context.Context) ([]repository.ItemListing, error)
}

type itemService struct {
	repo   repository.ItemRepository
	images *storage.ImageStore
}

func NewItemService(repo repository.ItemRepository, images *storage.ImageStore) ItemService {
	return &itemService{repo: repo, images: images}
}

// Create inserts the item row first, then validates and stores the image.
// When it returns ErrNoImage or ErrBadImageType the returned id is non-zero:
// the row was already committed and stays, without an image path. That
// partial state is intentional and kept for compatibility with existing
// clients; only the failures before the insert leave no trace.
func (s *itemService) Create(ctx context.Context, in CreateItemInput) (uint64, error) {
	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)
	if strings.TrimSpace(in.UserID) == "" || name == "" || description == "" || strings.TrimSpace(in.Price) == "" {
		return 0, ErrMissingFields
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	if err != nil || price < 0 {
		return 0, ErrInvalidPrice
	}
	loginID, err := strconv.ParseUint(strings.TrimSpace(in.UserID), 10, 64)
	if err != nil {
		return 0, ErrInvalidOwner
	}

	item := &model.Item{
		Name:        name,
		Description: description,
		Price:       price,
		LoginID:     loginID,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return 0, err
	}

	if in.Image == nil {
		return item.ID, ErrNoImage
	}
	if !s.images.Allowed(in.Image.Filename) {
		return item.ID, ErrBadImageType
	}

	src, err := in.Image.Open()
	if err != nil {
		return item.ID, err
	}
	defer src.Close()

	if err := s.images.Save(item.ID, src); err != nil {
		return item.ID, err
	}
	path := "/images/" + s.images.FileName(item.ID)
	if err := s.repo.SetImagePath(ctx, item.ID, path); err != nil {
		return item.ID, err
	}
	return item.ID, nil
}

func (s *itemService) List(ctx context.Context) ([]repository.ItemListing, error) {
	return s.repo.ListWithOwners(ctx)
}
