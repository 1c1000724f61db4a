package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/urbanthreads-backend/pkg/db/models"
	"github.com/angelmondragon/urbanthreads-backend/pkg/enums"
)

type demoProduct struct {
	category string
	serial   string
	name     string
	model    string
	price    string
	stock    int
}

type demoUser struct {
	name  string
	email string
	role  enums.UserRole
}

var demoCategories = []models.Category{
	{Name: "Tops", Description: "Shirts, tees and knitwear"},
	{Name: "Bottoms", Description: "Trousers, denim and shorts"},
	{Name: "Outerwear", Description: "Jackets and coats"},
	{Name: "Accessories", Description: "Belts, scarves and bags"},
}

var demoProducts = []demoProduct{
	{"Tops", "UT-TOP-001", "Oxford Button-Down", "OX-100", "49.90", 40},
	{"Tops", "UT-TOP-002", "Merino Crew Sweater", "MC-220", "89.00", 25},
	{"Tops", "UT-TOP-003", "Heavyweight Tee", "HT-010", "24.50", 120},
	{"Bottoms", "UT-BOT-001", "Selvedge Denim", "SD-501", "119.00", 30},
	{"Bottoms", "UT-BOT-002", "Pleated Chino", "PC-330", "74.00", 35},
	{"Outerwear", "UT-OUT-001", "Waxed Field Jacket", "WF-900", "249.00", 10},
	{"Outerwear", "UT-OUT-002", "Wool Overcoat", "WO-750", "329.00", 6},
	{"Accessories", "UT-ACC-001", "Leather Belt", "LB-040", "39.00", 60},
	{"Accessories", "UT-ACC-002", "Cashmere Scarf", "CS-115", "65.00", 0},
}

var demoUsers = []demoUser{
	{"Demo Customer", "customer@urbanthreads.dev", enums.UserRoleCustomer},
	{"Demo Product Manager", "pm@urbanthreads.dev", enums.UserRoleProductManager},
	{"Demo Sales Manager", "sales@urbanthreads.dev", enums.UserRoleSalesManager},
}

type passwordHasher interface {
	Hash(password string) (string, error)
}

type seedResult struct {
	Categories int
	Products   int
	Users      int
}

// seedDemoData inserts the demo catalog and users. Rows that already exist
// are left untouched so the seed can be rerun.
func seedDemoData(ctx context.Context, tx *gorm.DB, hasher passwordHasher, password string) (seedResult, error) {
	var res seedResult
	tx = tx.WithContext(ctx)

	for i := range demoCategories {
		cat := demoCategories[i]
		out := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&cat)
		if out.Error != nil {
			return res, fmt.Errorf("seed category %q: %w", cat.Name, out.Error)
		}
		res.Categories += int(out.RowsAffected)
	}

	var cats []models.Category
	if err := tx.Find(&cats).Error; err != nil {
		return res, fmt.Errorf("load categories: %w", err)
	}
	byName := make(map[string]int64, len(cats))
	for _, c := range cats {
		byName[c.Name] = c.ID
	}

	for _, p := range demoProducts {
		categoryID, ok := byName[p.category]
		if !ok {
			return res, fmt.Errorf("seed product %q: category %q missing", p.name, p.category)
		}
		serial := p.serial
		row := models.Product{
			Name:            p.name,
			Model:           p.model,
			SerialNumber:    &serial,
			Description:     p.name + " from the UrbanThreads core collection",
			QuantityInStock: p.stock,
			Price:           decimal.RequireFromString(p.price),
			WarrantyStatus:  "none",
			DistributorInfo: "UrbanThreads Supply Co.",
			CategoryID:      &categoryID,
		}
		out := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		if out.Error != nil {
			return res, fmt.Errorf("seed product %q: %w", p.name, out.Error)
		}
		res.Products += int(out.RowsAffected)
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return res, fmt.Errorf("hash demo password: %w", err)
	}
	for _, u := range demoUsers {
		row := models.User{Name: u.name, Email: u.email, PasswordHash: hash, Role: u.role}
		out := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		if out.Error != nil {
			return res, fmt.Errorf("seed user %q: %w", u.email, out.Error)
		}
		res.Users += int(out.RowsAffected)
	}
	return res, nil
}
