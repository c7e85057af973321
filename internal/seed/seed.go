package seed

import (
	"fmt"
	"os"
	"strconv"

	"foh/internal/domain/model"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Runは初期データを投入する（再実行しても増えない）
func Run(db *gorm.DB, log *zap.Logger) error {
	if err := seedStaff(db, log); err != nil {
		return err
	}
	if err := seedTables(db); err != nil {
		return err
	}
	if err := seedCatalog(db); err != nil {
		return err
	}
	log.Info("seed done")
	return nil
}

// スタッフはSEED_<ROLE>_EMAIL / SEED_<ROLE>_PASSWORDから作る
func seedStaff(db *gorm.DB, log *zap.Logger) error {
	roles := []model.Role{model.RoleAdmin, model.RoleWaiter, model.RoleChef}
	envKeys := map[model.Role]string{
		model.RoleAdmin:  "ADMIN",
		model.RoleWaiter: "WAITER",
		model.RoleChef:   "CHEF",
	}

	for _, role := range roles {
		key := envKeys[role]
		email := os.Getenv("SEED_" + key + "_EMAIL")
		pass := os.Getenv("SEED_" + key + "_PASSWORD")
		if email == "" || pass == "" {
			log.Warn("skip seeding staff: missing env", zap.String("role", string(role)))
			continue
		}

		var count int64
		if err := db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := model.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         role,
			IsActive:     true,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		log.Info("seeded staff", zap.String("role", string(role)), zap.String("email", email))
	}
	return nil
}

func seedTables(db *gorm.DB) error {
	n := 8
	if v := os.Getenv("SEED_TABLE_COUNT"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return fmt.Errorf("SEED_TABLE_COUNT must be a positive int")
		}
		n = parsed
	}

	for i := 1; i <= n; i++ {
		table := model.Table{Name: fmt.Sprintf("Table %d", i), Number: i}
		if err := db.Where(model.Table{Number: i}).FirstOrCreate(&table).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedCatalog(db *gorm.DB) error {
	categories := []model.Category{
		{SortOrder: 1, Name: "Drinks"},
		{SortOrder: 2, Name: "Food"},
		{SortOrder: 3, Name: "Desserts"},
	}
	byName := map[string]int64{}
	for i := range categories {
		c := &categories[i]
		if err := db.Where(model.Category{SortOrder: c.SortOrder}).FirstOrCreate(c).Error; err != nil {
			return err
		}
		byName[c.Name] = c.ID
	}

	products := []model.Product{
		{Name: "Coffee", Description: "Espresso-based", PriceCents: 250, CategoryID: byName["Drinks"]},
		{Name: "Tea", Description: "Pot of loose leaf", PriceCents: 220, CategoryID: byName["Drinks"]},
		{Name: "Orange Juice", Description: "Freshly squeezed", PriceCents: 300, CategoryID: byName["Drinks"]},
		{Name: "Croissant", Description: "Butter croissant", PriceCents: 300, CategoryID: byName["Food"]},
		{Name: "Club Sandwich", Description: "Chicken, bacon, egg", PriceCents: 850, CategoryID: byName["Food"]},
		{Name: "Soup of the Day", Description: "Ask your waiter", PriceCents: 550, CategoryID: byName["Food"]},
		{Name: "Cheesecake", Description: "Baked, with berry coulis", PriceCents: 450, CategoryID: byName["Desserts"]},
	}
	for i := range products {
		p := &products[i]
		if err := db.Where(model.Product{Name: p.Name, CategoryID: p.CategoryID}).
			Attrs(model.Product{IsActive: true}).
			FirstOrCreate(p).Error; err != nil {
			return err
		}
	}
	return nil
}
