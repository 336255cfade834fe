package db

import (
	"errors"
	"log"
	"os"

	"github.com/impostor-dev/impostor/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var defaultCategories = []struct {
	Name        string
	Description string
	Words       []string
}{
	{"Animales", "Animales de todo tipo", []string{"León", "Elefante", "Tigre", "Jirafa", "Mono"}},
	{"Países", "Países del mundo", []string{"España", "Francia", "Italia", "Alemania", "Portugal"}},
	{"Películas", "Películas famosas", []string{"Titanic", "Avatar", "Matrix", "Gladiator", "Casablanca"}},
	{"Comida", "Platos y alimentos", []string{"Paella", "Pizza", "Sushi", "Tortilla", "Lasaña"}},
	{"Deportes", "Deportes y actividades", []string{"Fútbol", "Baloncesto", "Tenis", "Natación", "Ciclismo"}},
}

// SeedDatabase creates the initial admin account and the default categories
// with their starter word lists. It is idempotent: nothing is written when an
// admin already exists or a category name is already taken.
func SeedDatabase() error {
	var admin models.User

	err := DB.Where("role = ?", models.RoleAdmin).First(&admin).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			password = "password"
			log.Println("ADMIN_PASSWORD not set, seeding admin with the default password")
		}

		hash, hashErr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if hashErr != nil {
			return hashErr
		}

		admin = models.User{
			Name:         "Admin",
			Email:        "admin@example.com",
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		}

		if err := DB.Create(&admin).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	for _, seed := range defaultCategories {
		var existing models.Category

		err := DB.Where("name = ?", seed.Name).First(&existing).Error

		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		category := models.Category{
			Name:        seed.Name,
			Description: seed.Description,
			IsDefault:   true,
		}

		if err := DB.Create(&category).Error; err != nil {
			return err
		}

		for _, text := range seed.Words {
			if err := DB.Create(&models.Word{Text: text, CategoryID: category.ID}).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
