// Package seed fills an empty database with the default admin account and
// the demo catalog. Every step checks its table first, so Run is safe to
// call on every start.
package seed

import (
	"context"
	"errors"
	"fmt"

	"retailpos/internal/model"
	"retailpos/internal/repository"
	"retailpos/internal/service"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DefaultAdminEmail    = "admin@gmail.com"
	DefaultAdminPassword = "admin"
)

type categorySeed struct {
	Name  string
	Image string
}

type productSeed struct {
	Name     string
	Category string
	Price    string
}

var categories = []categorySeed{
	{"Chicken", "/uploads/categories/1.png"},
	{"Seafood", "/uploads/categories/2.png"},
	{"Pasta", "/uploads/categories/3.png"},
	{"Rice bowl", "/uploads/categories/4.png"},
	{"Beverages", "/uploads/categories/5.png"},
}

var products = []productSeed{
	{"Grilled Chicken Breast", "Chicken", "12.99"},
	{"Crispy Fried Chicken", "Chicken", "10.99"},
	{"BBQ Chicken Wings", "Chicken", "9.99"},
	{"Chicken Tikka", "Chicken", "11.99"},
	{"Honey Garlic Chicken", "Chicken", "12.49"},
	{"Buffalo Chicken Tenders", "Chicken", "10.49"},
	{"Grilled Salmon", "Seafood", "16.99"},
	{"Shrimp Scampi", "Seafood", "15.99"},
	{"Fish & Chips", "Seafood", "13.99"},
	{"Crab Cakes", "Seafood", "14.99"},
	{"Lobster Tail", "Seafood", "24.99"},
	{"Seafood Platter", "Seafood", "22.99"},
	{"Spaghetti Carbonara", "Pasta", "11.99"},
	{"Penne Arrabbiata", "Pasta", "10.99"},
	{"Lasagna", "Pasta", "12.99"},
	{"Fettuccine Alfredo", "Pasta", "11.99"},
	{"Pesto Linguine", "Pasta", "11.49"},
	{"Chicken Teriyaki Bowl", "Rice bowl", "10.99"},
	{"Beef Bulgogi Bowl", "Rice bowl", "12.99"},
	{"Vegetable Fried Rice", "Rice bowl", "8.99"},
	{"Shrimp Fried Rice", "Rice bowl", "11.99"},
	{"Kimchi Fried Rice", "Rice bowl", "9.99"},
}

type Seeder struct {
	users      repository.UserRepository
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

func New(users repository.UserRepository, categories repository.CategoryRepository, products repository.ProductRepository) *Seeder {
	return &Seeder{users: users, categories: categories, products: products}
}

// Run seeds admin, then categories, then products. Products look their
// category up by name, so the order matters.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.EnsureDefaultAdmin(ctx); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := s.SeedCategories(ctx); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	if err := s.SeedProducts(ctx); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	return nil
}

// EnsureDefaultAdmin creates admin@gmail.com only while no user exists.
func (s *Seeder) EnsureDefaultAdmin(ctx context.Context) error {
	n, err := s.users.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	hash, err := service.HashPassword(DefaultAdminPassword)
	if err != nil {
		return err
	}
	admin := &model.User{
		Email:        DefaultAdminEmail,
		Name:         "Admin",
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}
	log.Warn().Str("email", DefaultAdminEmail).Msg("default admin created; change its password")
	return nil
}

func (s *Seeder) SeedCategories(ctx context.Context) error {
	n, err := s.categories.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	for _, c := range categories {
		image := c.Image
		if err := s.categories.Create(ctx, &model.Category{Name: c.Name, Image: &image, Active: true}); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(categories)).Msg("categories seeded")
	return nil
}

// SeedProducts runs only on an empty products table and still skips names
// that already exist. Product n gets /uploads/products/n.png.
func (s *Seeder) SeedProducts(ctx context.Context) error {
	n, err := s.products.Count(ctx)
	if err != nil || n > 0 {
		return err
	}

	categoryIDs := make(map[string]*uint, len(categories))
	created := 0
	for i, p := range products {
		exists, err := s.products.ExistsByName(ctx, p.Name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		catID, ok := categoryIDs[p.Category]
		if !ok {
			c, err := s.categories.FindByName(ctx, p.Category)
			switch {
			case err == nil:
				catID = &c.ID
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
			categoryIDs[p.Category] = catID
		}

		image := fmt.Sprintf("/uploads/products/%d.png", i+1)
		product := &model.Product{
			Name:       p.Name,
			CategoryID: catID,
			Price:      decimal.RequireFromString(p.Price),
			Active:     true,
			Image:      &image,
		}
		if err := s.products.Create(ctx, product); err != nil {
			return err
		}
		created++
	}
	log.Info().Int("count", created).Msg("products seeded")
	return nil
}
