package collate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrilabel/models"
)

func TestSortedNamesGroupsLatinBeforeOthers(t *testing.T) {
	t.Parallel()

	got := sortedNames([]string{"apple", "바나나", "Apple", "가지"})
	assert.Equal(t, []string{"Apple", "apple", "가지", "바나나"}, got)
}

func TestSortedNamesDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	input := []string{"b", "a"}
	_ = sortedNames(input)
	assert.Equal(t, []string{"b", "a"}, input)
}

func TestKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want SortKey
	}{
		{"latin", "Butter", SortKey{Group: 0, Primary: "butter", Cleaned: "Butter"}},
		{"brand suffix", "Butter|Seoul Milk", SortKey{Group: 0, Primary: "butter", Cleaned: "Butter"}},
		{"leading symbol", "①이눌린|브랜드", SortKey{Group: 1, Primary: "이눌린", Cleaned: "이눌린"}},
		{"leading space and punctuation", "  (*) oat", SortKey{Group: 0, Primary: "oat", Cleaned: "oat"}},
		{"digit first", "7-grain", SortKey{Group: 1, Primary: "7-grain", Cleaned: "7-grain"}},
		{"empty", "", SortKey{Group: 1}},
		{"only symbols", "★★|brand", SortKey{Group: 1}},
		{"hangul jamo is stripped", "ㄱ가루", SortKey{Group: 1, Primary: "가루", Cleaned: "가루"}},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Key(tt.in))
		})
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	assert.Negative(t, compare("Apple", "apple"))
	assert.Negative(t, compare("apple", "Banana"))
	assert.Negative(t, compare("zucchini", "가지"))
	assert.Negative(t, compare("가지", "바나나"))
	assert.Negative(t, compare("9 grain", "가지"))
	assert.Zero(t, compare("①이눌린|브랜드", "이눌린"))
	assert.Positive(t, compare("①이눌린|브랜드", "가지"))
}

func TestIngredientsSortsByDisplayName(t *testing.T) {
	t.Parallel()

	items := []models.Ingredient{
		{DisplayName: "설탕|백설"},
		{DisplayName: "butter|Seoul"},
		{DisplayName: "①이눌린|브랜드"},
		{DisplayName: "Almond Flour"},
		{DisplayName: "가루"},
	}

	sorted := Ingredients(items)

	require.Len(t, sorted, len(items))
	names := make([]string, len(sorted))
	for i, ing := range sorted {
		names[i] = ing.DisplayName
	}
	assert.Equal(t, []string{"Almond Flour", "butter|Seoul", "가루", "설탕|백설", "①이눌린|브랜드"}, names)
	assert.Equal(t, "설탕|백설", items[0].DisplayName)
}

func TestSortFuncIsStableForIdenticalNames(t *testing.T) {
	t.Parallel()

	type row struct {
		name string
		id   int
	}
	rows := []row{{"Salt|B", 1}, {"Salt|A", 2}, {"salt", 3}, {"Salt", 4}}

	SortFunc(rows, func(r row) string { return r.name })

	ids := []int{rows[0].id, rows[1].id, rows[2].id, rows[3].id}
	assert.Equal(t, []int{1, 2, 4, 3}, ids)
}
