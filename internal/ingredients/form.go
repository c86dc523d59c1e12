package ingredients

import (
	"net/url"

	"nutrilabel/internal/nutrition"
)

// Field describes one numeric column of the ingredient form.
type Field struct {
	Name  string
	Label string
	Unit  nutrition.Unit
	ref   func(*Input) *float64
}

// Value returns the field's value in in.
func (f Field) Value(in Input) float64 {
	return *f.ref(&in)
}

var fields = []Field{
	{Name: "base_g", Label: "기준 중량", Unit: nutrition.UnitG, ref: func(in *Input) *float64 { return &in.BaseG }},
	{Name: "sodium_mg_100g", Label: "나트륨", Unit: nutrition.UnitMg, ref: func(in *Input) *float64 { return &in.SodiumMg100g }},
	{Name: "carbs_g_100g", Label: "탄수화물", Unit: nutrition.UnitG, ref: func(in *Input) *float64 { return &in.CarbsG100g }},
	{Name: "sugars_g_100g", Label: "당류", Unit: nutrition.UnitG, ref: func(in *Input) *float64 { return &in.SugarsG100g }},
	{Name: "fiber_g_100g", Label: "식이섬유", Unit: nutrition.UnitG, ref: func(in *Input) *float64 { return &in.FiberG100g }},
	{Name: "allulose_g_100g", Label: "알룰로스", Unit: nutrition.UnitG, ref: func(in *Input) *float64 { return &in.AlluloseG100g }},
	{Name: "fat_g_100g", Label: "지방", Unit: nutrition.UnitG, ref: func(in *Input) *float64 { return &in.FatG100g }},
	{Name: "trans_fat_g_100g", Label: "트랜스지방", Unit: nutrition.UnitG, ref: func(in *Input) *float64 { return &in.TransFatG100g }},
	{Name: "sat_fat_g_100g", Label: "포화지방", Unit: nutrition.UnitG, ref: func(in *Input) *float64 { return &in.SatFatG100g }},
	{Name: "chol_mg_100g", Label: "콜레스테롤", Unit: nutrition.UnitMg, ref: func(in *Input) *float64 { return &in.CholMg100g }},
	{Name: "protein_g_100g", Label: "단백질", Unit: nutrition.UnitG, ref: func(in *Input) *float64 { return &in.ProteinG100g }},
}

// Fields lists the numeric form fields in display order.
func Fields() []Field {
	result := make([]Field, len(fields))
	copy(result, fields)
	return result
}

// ParseForm reads an ingredient form. Numeric fields that are blank, negative
// or unparsable become 0; the store later turns a zero base weight into 100.
func ParseForm(form url.Values) Input {
	in := Input{
		Name:  form.Get("name"),
		Brand: form.Get("brand"),
		Memo:  form.Get("memo"),
	}
	for _, field := range fields {
		*field.ref(&in) = nutrition.ToNonNegativeFloat(form.Get(field.Name))
	}
	return in
}
