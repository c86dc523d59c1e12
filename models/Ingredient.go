package models

import (
	"strings"

	"gorm.io/gorm"
)

// Ingredient is a raw material with nutrient densities expressed per 100 g.
// Density columns are nullable; a null value means the source label did not
// declare the nutrient.
type Ingredient struct {
	gorm.Model
	DisplayName   string   `gorm:"index;not null" json:"display_name"`
	Name          string   `gorm:"uniqueIndex:idx_ingredient_name_brand;not null" json:"name"`
	Brand         string   `gorm:"uniqueIndex:idx_ingredient_name_brand;not null;default:''" json:"brand"`
	BaseG         float64  `gorm:"not null;default:100" json:"base_g"`
	SodiumMg100g  *float64 `gorm:"column:sodium_mg_100g" json:"sodium_mg_100g"`
	CarbsG100g    *float64 `gorm:"column:carbs_g_100g" json:"carbs_g_100g"`
	SugarsG100g   *float64 `gorm:"column:sugars_g_100g" json:"sugars_g_100g"`
	FiberG100g    *float64 `gorm:"column:fiber_g_100g" json:"fiber_g_100g"`
	AlluloseG100g *float64 `gorm:"column:allulose_g_100g" json:"allulose_g_100g"`
	FatG100g      *float64 `gorm:"column:fat_g_100g" json:"fat_g_100g"`
	TransFatG100g *float64 `gorm:"column:trans_fat_g_100g" json:"trans_fat_g_100g"`
	SatFatG100g   *float64 `gorm:"column:sat_fat_g_100g" json:"sat_fat_g_100g"`
	CholMg100g    *float64 `gorm:"column:chol_mg_100g" json:"chol_mg_100g"`
	ProteinG100g  *float64 `gorm:"column:protein_g_100g" json:"protein_g_100g"`
	Memo          string   `gorm:"type:text" json:"memo"`
}

// ComposeDisplayName joins name and brand the way ingredient pickers show them.
func ComposeDisplayName(name, brand string) string {
	name = strings.TrimSpace(name)
	brand = strings.TrimSpace(brand)
	if brand == "" {
		return name
	}
	return name + "|" + brand
}

// Float returns a pointer to v, for populating nullable density columns.
func Float(v float64) *float64 {
	return &v
}
