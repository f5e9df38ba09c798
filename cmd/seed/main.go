// Seeds the first admin account. Usage:
//
//	go run ./cmd/seed -email admin@example.com -name "Site Admin" -password <pw>
package main

import (
	"flag"
	"log"

	"github.com/sahilchouksey/edulisting-api/config"
	"github.com/sahilchouksey/edulisting-api/database"
	"github.com/sahilchouksey/edulisting-api/model"
	"github.com/sahilchouksey/edulisting-api/utils/auth"
	"gorm.io/gorm"
)

func main() {
	email := flag.String("email", "", "admin email")
	name := flag.String("name", "Admin", "display name")
	password := flag.String("password", "", "password (min 8 chars)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	if err := config.LoadENV(); err != nil {
		log.Fatal(err)
	}

	store, err := database.StartGORM()
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatal(err)
	}

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("unsupported database store")
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal(err)
	}

	var existing model.User
	err = db.First(&existing, "email = ?", *email).Error
	switch {
	case err == nil:
		log.Fatalf("account %s already exists", *email)
	case err != gorm.ErrRecordNotFound:
		log.Fatal(err)
	}

	user := model.User{
		Email:        *email,
		Name:         *name,
		PasswordHash: hash,
		Role:         "admin",
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatal(err)
	}

	log.Printf("created admin account %s (id %d)", user.Email, user.ID)
}
