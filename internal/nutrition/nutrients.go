package nutrition

import "fmt"

// Unit is the physical unit a nutrient is declared in. It also selects the
// rounding precision.
type Unit string

const (
	UnitKcal Unit = "kcal"
	UnitMg   Unit = "mg"
	UnitG    Unit = "g"
)

// Key identifies a nutrient in Totals maps.
type Key string

const (
	KeyKcal     Key = "kcal"
	KeySodium   Key = "sodium_mg"
	KeyCarbs    Key = "carbs_g"
	KeySugars   Key = "sugars_g"
	KeyFiber    Key = "fiber_g"
	KeyAllulose Key = "allulose_g"
	KeyFat      Key = "fat_g"
	KeyTransFat Key = "trans_fat_g"
	KeySatFat   Key = "sat_fat_g"
	KeyChol     Key = "chol_mg"
	KeyProtein  Key = "protein_g"
)

// Nutrient is one row of the nutrition facts table.
type Nutrient struct {
	Key   Key
	Label string
	Unit  Unit
}

var order = []Nutrient{
	{KeyKcal, "열량(kcal)", UnitKcal},
	{KeySodium, "나트륨(mg)", UnitMg},
	{KeyCarbs, "탄수화물(g)", UnitG},
	{KeySugars, "당류(g)", UnitG},
	{KeyFiber, "식이섬유(g)", UnitG},
	{KeyAllulose, "알룰로스(g)", UnitG},
	{KeyFat, "지방(g)", UnitG},
	{KeyTransFat, "트랜스지방(g)", UnitG},
	{KeySatFat, "포화지방(g)", UnitG},
	{KeyChol, "콜레스테롤(mg)", UnitMg},
	{KeyProtein, "단백질(g)", UnitG},
}

// Order returns the canonical display order of the nutrition facts table.
// The returned slice is a copy and may be modified by the caller.
func Order() []Nutrient {
	result := make([]Nutrient, len(order))
	copy(result, order)
	return result
}

// Precision returns the number of decimal places a value in unit is shown with.
func Precision(unit Unit) int32 {
	switch unit {
	case UnitKcal, UnitMg:
		return 0
	default:
		return 1
	}
}

// FormatValue renders an already rounded value with its unit suffix, e.g.
// "496 kcal" or "4.0 g".
func FormatValue(value float64, unit Unit) string {
	return fmt.Sprintf("%.*f %s", Precision(unit), value, unit)
}
