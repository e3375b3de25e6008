package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shinyyama/marketplace-backend/internal/config"
	"github.com/shinyyama/marketplace-backend/internal/handler"
	"github.com/shinyyama/marketplace-backend/internal/repository"
	"github.com/shinyyama/marketplace-backend/internal/service"
	"github.com/shinyyama/marketplace-backend/internal/storage"
	"gorm.io/gorm"
)

type Server struct {
	e        *echo.Echo
	userRepo repository.UserRepository
	itemRepo repository.ItemRepository
}

// New builds the echo app. db may be nil: repositories answer ErrDBNotReady
// (503 on the wire) until SetDB attaches a live connection.
func New(db *gorm.DB, cfg *config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		// Any origin is accepted; echoing the caller's origin keeps
		// credentialed requests working. Trusted-network deployment only.
		AllowOriginFunc: func(origin string) (bool, error) {
			return true, nil
		},
	}))
	e.Use(middleware.BodyLimit(cfg.MaxUploadSize))

	images := storage.NewImageStore(cfg.UploadDir, cfg.AllowedExts)

	userRepo := repository.NewUserRepository(db)
	userSvc := service.NewUserService(userRepo)
	userHandler := handler.NewUserHandler(userSvc)

	itemRepo := repository.NewItemRepository(db)
	itemSvc := service.NewItemService(itemRepo, images)
	itemHandler := handler.NewItemHandler(itemSvc, images)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	e.POST("/add_user", userHandler.Register)
	e.POST("/login", userHandler.Login)
	e.POST("/add_item", itemHandler.Create)
	e.GET("/items", itemHandler.List)
	e.GET("/item/:id/image", itemHandler.Image)

	return &Server{e: e, userRepo: userRepo, itemRepo: itemRepo}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) SetDB(db *gorm.DB) {
	s.userRepo.SetDB(db)
	s.itemRepo.SetDB(db)
}

// Handler exposes the underlying mux for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}
