// Command seed creates the tables and loads a demo user with a few items,
// for local frontend work against an empty database.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/shinyyama/marketplace-backend/internal/config"
	"github.com/shinyyama/marketplace-backend/internal/db"
	"github.com/shinyyama/marketplace-backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	username := flag.String("username", "demo", "seed user name")
	password := flag.String("password", "demo1234", "seed user password")
	email := flag.String("email", "demo@example.com", "seed user email")
	count := flag.Int("items", 3, "number of sample items to create")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&model.User{}, &model.Item{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	var user model.User
	err = gdb.Where("username = ?", *username).First(&user).Error
	if err != nil {
		hash, herr := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if herr != nil {
			return fmt.Errorf("hash password: %w", herr)
		}
		user = model.User{Username: *username, PasswordHash: string(hash), Email: *email}
		if cerr := gdb.Create(&user).Error; cerr != nil {
			return fmt.Errorf("create user: %w", cerr)
		}
		log.Printf("created user %q (id=%d)", user.Username, user.ID)
	} else {
		log.Printf("user %q already exists (id=%d); reusing", user.Username, user.ID)
	}

	for i := 1; i <= *count; i++ {
		item := model.Item{
			Name:        fmt.Sprintf("Sample item %d", i),
			Description: fmt.Sprintf("Seeded listing number %d, no image attached.", i),
			Price:       float64(i) * 9.99,
			LoginID:     user.ID,
		}
		if err := gdb.Create(&item).Error; err != nil {
			return fmt.Errorf("create item %d: %w", i, err)
		}
		log.Printf("created item %q (id=%d)", item.Name, item.ID)
	}
	return nil
}
