package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrilabel/internal/db/mock"
	"nutrilabel/internal/ingredients"
	"nutrilabel/models"
)

const sheet = "\ufeff원재료 선택명(자동: 원재료|브랜드),원재료명,브랜드/제조사,기준량(g),나트륨(mg/100g),탄수화물(g/100g),당류(g/100g),식이섬유(g/100g),알룰로스(g/100g),지방(g/100g),트랜스지방(g/100g),포화지방(g/100g),콜레스테롤(mg/100g),단백질(g/100g),메모(출처/라벨),비고\n" +
	",Unsalted Butter,Elle & Vire,100,11,0.6,0.6,0,0,83,3,55,210,0.7,label 2026,ignored\n" +
	",찹쌀가루,햇살,100,,78.2,0.1,1.2,,0.9,,,,6.5,,\n" +
	"말차|기본,말차,,,n/a,40,-3,38,0,5,0,1,0,30,,\n" +
	",,빈이름,100,1,1,1,1,1,1,1,1,1,1,,\n"

func TestReadCSVMapsHeaders(t *testing.T) {
	records, err := readCSV(strings.NewReader(sheet))
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "Unsalted Butter", records[0]["name"])
	assert.Equal(t, "Elle & Vire", records[0]["brand"])
	assert.Equal(t, "83", records[0]["fat_g_100g"])
	assert.Equal(t, "label 2026", records[0]["memo"])
	assert.NotContains(t, records[0], "")
	assert.Equal(t, "말차|기본", records[2]["display_name"])
}

func TestReadCSVRequiresNameColumn(t *testing.T) {
	_, err := readCSV(strings.NewReader("브랜드/제조사,기준량(g)\n곰표,100\n"))
	require.Error(t, err)

	_, err = readCSV(strings.NewReader(""))
	require.Error(t, err)
}

func TestBuildInputCoercesNumbers(t *testing.T) {
	in, ok := buildInput(map[string]string{
		"name":           " 말차 ",
		"sodium_mg_100g": "n/a",
		"sugars_g_100g":  "-3",
		"fiber_g_100g":   "38",
		"carbs_g_100g":   "40",
	})
	require.True(t, ok)
	assert.Equal(t, "말차", in.Name)
	assert.Zero(t, in.SodiumMg100g)
	assert.Zero(t, in.SugarsG100g)
	assert.Equal(t, 38.0, in.FiberG100g)
	assert.Equal(t, 40.0, in.CarbsG100g)

	_, ok = buildInput(map[string]string{"name": "  ", "brand": "곰표"})
	assert.False(t, ok)
}

func TestImportRecordsUpsertsByNameAndBrand(t *testing.T) {
	ctx := context.Background()
	db, err := mock.New(ctx)
	require.NoError(t, err)
	store := ingredients.NewStore(db)

	records, err := readCSV(strings.NewReader(sheet))
	require.NoError(t, err)

	result, err := importRecords(ctx, store, records)
	require.NoError(t, err)
	assert.Equal(t, summary{Created: 2, Updated: 1, Skipped: 1}, result)

	var butter models.Ingredient
	require.NoError(t, db.Where("name = ? AND brand = ?", "Unsalted Butter", "Elle & Vire").First(&butter).Error)
	require.NotNil(t, butter.FatG100g)
	assert.Equal(t, 83.0, *butter.FatG100g)
	assert.Equal(t, "label 2026", butter.Memo)

	var rice models.Ingredient
	require.NoError(t, db.Where("name = ?", "찹쌀가루").First(&rice).Error)
	assert.Equal(t, "찹쌀가루|햇살", rice.DisplayName)
	assert.Equal(t, 100.0, rice.BaseG)

	var matcha models.Ingredient
	require.NoError(t, db.Where("name = ?", "말차").First(&matcha).Error)
	assert.Equal(t, "말차|기본", matcha.DisplayName)

	again, err := importRecords(ctx, store, records)
	require.NoError(t, err)
	assert.Equal(t, summary{Updated: 3, Skipped: 1}, again)
}

func TestCommandImportsIntoSqliteFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "ingredients.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sheet), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		csvPath,
		"--database-url", "sqlite:///" + filepath.Join(dir, "import.db"),
		"--log-level", "error",
	})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "Imported 3 ingredients from ingredients.csv")
	assert.Contains(t, out.String(), "3 created, 0 updated, 1 skipped")
}

func TestCommandRejectsMissingFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.csv")})
	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locate csv")
}
