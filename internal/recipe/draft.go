// Package recipe holds the recipe draft a visitor is composing and keeps it in
// the session between requests.
package recipe

import (
	"context"
	"encoding/gob"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/alexedwards/scs/v2"

	"nutrilabel/internal/nutrition"
	"nutrilabel/models"
)

// SessionKey is the session entry holding the current draft.
const SessionKey = "recipe:draft"

// ErrItemCountMismatch reports a form whose ingredient and amount lists differ in length.
var ErrItemCountMismatch = errors.New("recipe: ingredient_id and amount_g length mismatch")

func init() {
	gob.Register(Draft{})
}

// Item references an ingredient by id with the amount used in grams.
type Item struct {
	IngredientID uint
	AmountG      float64
}

// Draft is an ordered recipe composition plus the label metadata.
type Draft struct {
	Name        string
	UnitWeightG float64
	Items       []Item
}

// IDs returns the ingredient ids referenced by the draft in order.
func (d Draft) IDs() []uint {
	ids := make([]uint, 0, len(d.Items))
	for _, item := range d.Items {
		ids = append(ids, item.IngredientID)
	}
	return ids
}

// ParseForm builds a draft from the recipe form. Rows with an unknown id or a
// zero, negative or unparsable amount are dropped silently.
func ParseForm(form url.Values) (Draft, error) {
	ids := form["ingredient_id"]
	amounts := form["amount_g"]
	if len(ids) != len(amounts) {
		return Draft{}, ErrItemCountMismatch
	}

	draft := Draft{
		Name:        strings.TrimSpace(form.Get("recipe_name")),
		UnitWeightG: nutrition.ToNonNegativeFloat(form.Get("unit_weight_g")),
	}
	for i := range ids {
		id, err := strconv.ParseUint(strings.TrimSpace(ids[i]), 10, 64)
		if err != nil || id == 0 {
			continue
		}
		amount := nutrition.ToNonNegativeFloat(amounts[i])
		if amount == 0 {
			continue
		}
		draft.Items = append(draft.Items, Item{IngredientID: uint(id), AmountG: amount})
	}
	return draft, nil
}

// Hydrate resolves draft items against byID, keeping draft order. Items whose
// ingredient no longer exists are dropped.
func Hydrate(draft Draft, byID map[uint]*models.Ingredient) []nutrition.LineItem {
	items := make([]nutrition.LineItem, 0, len(draft.Items))
	for _, item := range draft.Items {
		ingredient, ok := byID[item.IngredientID]
		if !ok || ingredient == nil {
			continue
		}
		items = append(items, nutrition.LineItem{Ingredient: ingredient, AmountG: item.AmountG})
	}
	return items
}

// Load returns the draft stored in the session, or an empty draft.
func Load(ctx context.Context, sm *scs.SessionManager) Draft {
	if sm == nil {
		return Draft{}
	}
	draft, _ := sm.Get(ctx, SessionKey).(Draft)
	return draft
}

// Save replaces the session draft.
func Save(ctx context.Context, sm *scs.SessionManager, draft Draft) {
	if sm == nil {
		return
	}
	sm.Put(ctx, SessionKey, draft)
}

// Reset drops the session draft.
func Reset(ctx context.Context, sm *scs.SessionManager) {
	if sm == nil {
		return
	}
	sm.Remove(ctx, SessionKey)
}
