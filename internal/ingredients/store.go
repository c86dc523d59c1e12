// Package ingredients persists ingredient records.
package ingredients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"nutrilabel/internal/collate"
	"nutrilabel/internal/nutrition"
	"nutrilabel/models"
)

var (
	ErrNotFound     = errors.New("ingredients: not found")
	ErrNameRequired = errors.New("ingredients: name is required")
	ErrDuplicate    = errors.New("ingredients: name and brand already registered")
	ErrInvalidDB    = gorm.ErrInvalidDB
)

// Input carries the editable fields of an ingredient. Densities are per 100 g.
type Input struct {
	Name          string
	Brand         string
	BaseG         float64
	SodiumMg100g  float64
	CarbsG100g    float64
	SugarsG100g   float64
	FiberG100g    float64
	AlluloseG100g float64
	FatG100g      float64
	TransFatG100g float64
	SatFatG100g   float64
	CholMg100g    float64
	ProteinG100g  float64
	Memo          string
	// DisplayName overrides the composed "name|brand" label when set.
	DisplayName string
}

func (in Input) normalized() (Input, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Brand = strings.TrimSpace(in.Brand)
	in.Memo = strings.TrimSpace(in.Memo)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if in.Name == "" {
		return in, ErrNameRequired
	}
	if in.DisplayName == "" {
		in.DisplayName = models.ComposeDisplayName(in.Name, in.Brand)
	}
	if in.BaseG = nutrition.ToNonNegativeFloat(in.BaseG); in.BaseG == 0 {
		in.BaseG = 100
	}
	return in, nil
}

func (in Input) apply(ing *models.Ingredient) {
	density := func(v float64) *float64 {
		return models.Float(nutrition.ToNonNegativeFloat(v))
	}
	ing.Name = in.Name
	ing.Brand = in.Brand
	ing.DisplayName = in.DisplayName
	ing.BaseG = in.BaseG
	ing.SodiumMg100g = density(in.SodiumMg100g)
	ing.CarbsG100g = density(in.CarbsG100g)
	ing.SugarsG100g = density(in.SugarsG100g)
	ing.FiberG100g = density(in.FiberG100g)
	ing.AlluloseG100g = density(in.AlluloseG100g)
	ing.FatG100g = density(in.FatG100g)
	ing.TransFatG100g = density(in.TransFatG100g)
	ing.SatFatG100g = density(in.SatFatG100g)
	ing.CholMg100g = density(in.CholMg100g)
	ing.ProteinG100g = density(in.ProteinG100g)
	ing.Memo = in.Memo
}

// InputFrom copies the editable fields of ing, treating null densities as 0.
func InputFrom(ing *models.Ingredient) Input {
	v := nutrition.ToNonNegativeFloat
	return Input{
		Name:          ing.Name,
		Brand:         ing.Brand,
		BaseG:         ing.BaseG,
		SodiumMg100g:  v(ing.SodiumMg100g),
		CarbsG100g:    v(ing.CarbsG100g),
		SugarsG100g:   v(ing.SugarsG100g),
		FiberG100g:    v(ing.FiberG100g),
		AlluloseG100g: v(ing.AlluloseG100g),
		FatG100g:      v(ing.FatG100g),
		TransFatG100g: v(ing.TransFatG100g),
		SatFatG100g:   v(ing.SatFatG100g),
		CholMg100g:    v(ing.CholMg100g),
		ProteinG100g:  v(ing.ProteinG100g),
		Memo:          ing.Memo,
	}
}

// Store reads and writes ingredients through gorm.
type Store struct {
	db *gorm.DB
}

// NewStore wraps db. A nil db yields a store whose methods return ErrInvalidDB.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) conn(ctx context.Context) (*gorm.DB, error) {
	if s == nil || s.db == nil {
		return nil, ErrInvalidDB
	}
	return s.db.WithContext(ctx), nil
}

// List returns every ingredient in presentation order.
func (s *Store) List(ctx context.Context) ([]models.Ingredient, error) {
	return s.Search(ctx, "")
}

// Search returns ingredients whose display name contains query, ignoring
// case, in presentation order. A blank query matches everything.
func (s *Store) Search(ctx context.Context, query string) ([]models.Ingredient, error) {
	conn, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	tx := conn.Model(&models.Ingredient{})
	if query = strings.TrimSpace(query); query != "" {
		tx = tx.Where(`LOWER(display_name) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(query))+"%")
	}

	var result []models.Ingredient
	if err := tx.Find(&result).Error; err != nil {
		return nil, fmt.Errorf("search ingredients: %w", err)
	}
	return collate.Ingredients(result), nil
}

// Get loads a single ingredient.
func (s *Store) Get(ctx context.Context, id uint) (*models.Ingredient, error) {
	conn, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var ing models.Ingredient
	if err := conn.First(&ing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load ingredient %d: %w", id, err)
	}
	return &ing, nil
}

// ByIDs loads the ingredients with the given ids. Unknown ids are absent from
// the result.
func (s *Store) ByIDs(ctx context.Context, ids []uint) (map[uint]*models.Ingredient, error) {
	result := make(map[uint]*models.Ingredient, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	conn, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var found []models.Ingredient
	if err := conn.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("load ingredients: %w", err)
	}
	for i := range found {
		result[found[i].ID] = &found[i]
	}
	return result, nil
}

// Create inserts a new ingredient.
func (s *Store) Create(ctx context.Context, in Input) (*models.Ingredient, error) {
	in, err := in.normalized()
	if err != nil {
		return nil, err
	}
	conn, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var ing models.Ingredient
	err = conn.Transaction(func(tx *gorm.DB) error {
		if err := ensureUnique(tx, in, 0); err != nil {
			return err
		}
		in.apply(&ing)
		if err := tx.Create(&ing).Error; err != nil {
			return fmt.Errorf("create ingredient %q: %w", in.DisplayName, duplicateOr(err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

// Update overwrites the editable fields of an existing ingredient.
func (s *Store) Update(ctx context.Context, id uint, in Input) (*models.Ingredient, error) {
	in, err := in.normalized()
	if err != nil {
		return nil, err
	}

	ing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	conn, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	err = conn.Transaction(func(tx *gorm.DB) error {
		if err := ensureUnique(tx, in, id); err != nil {
			return err
		}
		in.apply(ing)
		if err := tx.Save(ing).Error; err != nil {
			return fmt.Errorf("update ingredient %d: %w", id, duplicateOr(err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ing, nil
}

// ensureUnique reports ErrDuplicate when another ingredient than exceptID
// already uses the name and brand of in.
func ensureUnique(tx *gorm.DB, in Input, exceptID uint) error {
	query := tx.Model(&models.Ingredient{}).Where("name = ? AND brand = ?", in.Name, in.Brand)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("check ingredient %q: %w", in.DisplayName, err)
	}
	if count > 0 {
		return ErrDuplicate
	}
	return nil
}

// duplicateOr maps a unique constraint violation lost to a concurrent writer
// onto ErrDuplicate.
func duplicateOr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// Delete permanently removes an ingredient.
func (s *Store) Delete(ctx context.Context, id uint) error {
	conn, err := s.conn(ctx)
	if err != nil {
		return err
	}

	res := conn.Unscoped().Delete(&models.Ingredient{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete ingredient %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Upsert creates the ingredient identified by name and brand, or updates it
// when it already exists. It reports whether a new record was created.
func (s *Store) Upsert(ctx context.Context, in Input) (bool, error) {
	in, err := in.normalized()
	if err != nil {
		return false, err
	}
	conn, err := s.conn(ctx)
	if err != nil {
		return false, err
	}

	created := false
	err = conn.Transaction(func(tx *gorm.DB) error {
		var existing models.Ingredient
		err := tx.Where("name = ? AND brand = ?", in.Name, in.Brand).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			in.apply(&existing)
			if err := tx.Create(&existing).Error; err != nil {
				return fmt.Errorf("create ingredient %q: %w", in.DisplayName, err)
			}
			created = true
			return nil
		case err != nil:
			return fmt.Errorf("find ingredient %q: %w", in.DisplayName, err)
		}

		in.apply(&existing)
		if err := tx.Save(&existing).Error; err != nil {
			return fmt.Errorf("update ingredient %q: %w", in.DisplayName, err)
		}
		return nil
	})
	return created, err
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
