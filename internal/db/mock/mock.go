package mock

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "nutrilabel/internal/log"
	"nutrilabel/models"
)

var sequence atomic.Uint64

// New returns an in-memory sqlite database seeded with representative bakery
// ingredients. Each call gets its own database.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	dsn := fmt.Sprintf("file:nutrilabel-mock-%d-%d?mode=memory&cache=shared", time.Now().UnixNano(), sequence.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		TranslateError:                           true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.Ingredient{}); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

// Ingredients returns the records New seeds, without ids.
func Ingredients() []models.Ingredient {
	f := models.Float
	return []models.Ingredient{
		{
			Name:         "박력분",
			Brand:        "곰표",
			BaseG:        100,
			SodiumMg100g: f(2),
			CarbsG100g:   f(76.3),
			SugarsG100g:  f(0.3),
			FiberG100g:   f(2.7),
			FatG100g:     f(1.1),
			SatFatG100g:  f(0.2),
			ProteinG100g: f(8.4),
			Memo:         "제품 라벨",
		},
		{
			Name:          "알룰로스",
			Brand:         "큐원",
			BaseG:         100,
			CarbsG100g:    f(95),
			AlluloseG100g: f(95),
		},
		{
			Name:          "Unsalted Butter",
			Brand:         "Elle & Vire",
			BaseG:         100,
			SodiumMg100g:  f(11),
			FatG100g:      f(82),
			SatFatG100g:   f(52),
			TransFatG100g: f(3),
			CholMg100g:    f(215),
			ProteinG100g:  f(0.7),
			CarbsG100g:    f(0.6),
		},
		{
			Name:         "①이눌린",
			Brand:        "",
			BaseG:        100,
			CarbsG100g:   f(90),
			FiberG100g:   f(90),
			SodiumMg100g: f(5),
		},
		{
			Name:         "almond flour",
			BaseG:        100,
			CarbsG100g:   f(21.6),
			SugarsG100g:  f(4.4),
			FiberG100g:   f(10.8),
			FatG100g:     f(50),
			SatFatG100g:  f(3.8),
			ProteinG100g: f(21.2),
			SodiumMg100g: f(1),
		},
	}
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	for _, ingredient := range Ingredients() {
		ingredientCopy := ingredient
		ingredientCopy.DisplayName = models.ComposeDisplayName(ingredient.Name, ingredient.Brand)
		if err := db.WithContext(ctx).Create(&ingredientCopy).Error; err != nil {
			return err
		}
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
