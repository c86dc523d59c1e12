package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"nutrilabel/internal/config"
	"nutrilabel/internal/db"
	"nutrilabel/internal/ingredients"
	applog "nutrilabel/internal/log"
	"nutrilabel/internal/nutrition"
)

const defaultCSVPath = "원재료_DB.csv"

// columns maps the spreadsheet headers to ingredient fields.
var columns = map[string]string{
	"원재료 선택명(자동: 원재료|브랜드)": "display_name",
	"원재료명":                 "name",
	"브랜드/제조사":              "brand",
	"기준량(g)":               "base_g",
	"나트륨(mg/100g)":         "sodium_mg_100g",
	"탄수화물(g/100g)":         "carbs_g_100g",
	"당류(g/100g)":           "sugars_g_100g",
	"식이섬유(g/100g)":         "fiber_g_100g",
	"알룰로스(g/100g)":         "allulose_g_100g",
	"지방(g/100g)":           "fat_g_100g",
	"트랜스지방(g/100g)":        "trans_fat_g_100g",
	"포화지방(g/100g)":         "sat_fat_g_100g",
	"콜레스테롤(mg/100g)":       "chol_mg_100g",
	"단백질(g/100g)":          "protein_g_100g",
	"메모(출처/라벨)":            "memo",
}

type summary struct {
	Created int
	Updated int
	Skipped int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import_ingredients [csv]",
		Short: "Loads ingredient nutrition data from a CSV export of the ingredient sheet.",
		Long: `Loads ingredient nutrition data from a CSV export of the ingredient sheet.

Rows are matched on (원재료명, 브랜드/제조사): existing ingredients are updated,
new ones are created. Blank or non-numeric nutrient cells are stored as 0.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			csvPath := defaultCSVPath
			if len(args) > 0 {
				csvPath = args[0]
			}
			databaseURL, _ := cmd.Flags().GetString("database-url")
			logLevel, _ := cmd.Flags().GetString("log-level")
			return run(cmd.Context(), cmd.OutOrStdout(), csvPath, databaseURL, logLevel)
		},
	}
	cmd.Flags().String("database-url", "", "database URL (defaults to DATABASE_URL)")
	cmd.Flags().String("log-level", "", "log level (defaults to LOG_LEVEL)")
	return cmd
}

func run(ctx context.Context, out io.Writer, csvPath, databaseURL, logLevel string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(csvPath) == "" {
		return fmt.Errorf("csv path must not be empty")
	}

	file, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("locate csv: %w", err)
	}
	defer file.Close()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if level := firstNonEmpty(logLevel, cfg.Logging.Level); level != "" {
		if err := applog.SetLevel(level); err != nil {
			return fmt.Errorf("set log level: %w", err)
		}
	}
	if strings.TrimSpace(databaseURL) != "" {
		cfg.Database.URL = databaseURL
	}

	records, err := readCSV(file)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	database, err := db.Configure(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	result, err := importRecords(ctx, ingredients.NewStore(database), records)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Imported %d ingredients from %s (%d created, %d updated, %d skipped)\n",
		result.Created+result.Updated, filepath.Base(csvPath), result.Created, result.Updated, result.Skipped)
	return nil
}

func importRecords(ctx context.Context, store *ingredients.Store, records []map[string]string) (summary, error) {
	var result summary
	for idx, record := range records {
		in, ok := buildInput(record)
		if !ok {
			applog.Debug(ctx, "skipping row without ingredient name", "row", idx+2)
			result.Skipped++
			continue
		}

		created, err := store.Upsert(ctx, in)
		if err != nil {
			return result, fmt.Errorf("row %d (%s): %w", idx+2, in.Name, err)
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}
	return result, nil
}

// buildInput converts a CSV record keyed by field name. It reports false for
// rows without a name.
func buildInput(record map[string]string) (ingredients.Input, bool) {
	in := ingredients.Input{
		Name:        strings.TrimSpace(record["name"]),
		Brand:       strings.TrimSpace(record["brand"]),
		DisplayName: strings.TrimSpace(record["display_name"]),
		Memo:        strings.TrimSpace(record["memo"]),
	}
	if in.Name == "" {
		return in, false
	}

	num := func(key string) float64 {
		return nutrition.ToNonNegativeFloat(record[key])
	}
	in.BaseG = num("base_g")
	in.SodiumMg100g = num("sodium_mg_100g")
	in.CarbsG100g = num("carbs_g_100g")
	in.SugarsG100g = num("sugars_g_100g")
	in.FiberG100g = num("fiber_g_100g")
	in.AlluloseG100g = num("allulose_g_100g")
	in.FatG100g = num("fat_g_100g")
	in.TransFatG100g = num("trans_fat_g_100g")
	in.SatFatG100g = num("sat_fat_g_100g")
	in.CholMg100g = num("chol_mg_100g")
	in.ProteinG100g = num("protein_g_100g")
	return in, true
}

// readCSV returns one map per data row keyed by field name. Unknown columns
// are ignored; the name column is required.
func readCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	header := make([]string, len(rows[0]))
	hasName := false
	for idx, raw := range rows[0] {
		key := strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff"))
		header[idx] = columns[key]
		if header[idx] == "name" {
			hasName = true
		}
	}
	if !hasName {
		return nil, errors.New(`csv is missing the "원재료명" column`)
	}

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		record := make(map[string]string, len(header))
		for idx, field := range header {
			if field == "" || idx >= len(row) {
				continue
			}
			record[field] = strings.TrimSpace(row[idx])
		}
		records = append(records, record)
	}

	return records, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
