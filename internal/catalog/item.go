// Package catalog defines the cosmetic item model and the API envelope codec.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformedEnvelope is returned when a response body has no "data" field.
var ErrMalformedEnvelope = errors.New("catalog: response has no data")

// Item is a single cosmetic entry. Read-only once decoded.
// Optional fields are empty strings when absent, never nil.
type Item struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Rarity       string `json:"rarity"`                 // "common", "legendary", "marvel", ...
	Category     string `json:"category"`               // "outfit", "pickaxe", "emote", ...
	Introduction string `json:"introduction,omitempty"` // "Introduced in Chapter 2, Season 4."
	Series       string `json:"series,omitempty"`
	Set          string `json:"set,omitempty"`
	Icon         string `json:"icon"`               // primary image, required
	Featured     string `json:"featured,omitempty"` // optional large image
}

// Image returns the featured image if there is one, otherwise the icon.
func (i Item) Image() string {
	if i.Featured != "" {
		return i.Featured
	}
	return i.Icon
}

// Valid reports whether the required fields are present.
func (i Item) Valid() bool {
	return i.ID != "" && i.Name != "" && i.Rarity != "" && i.Category != "" && i.Icon != ""
}

// wireValue is the {"value": "..."} wrapper the API uses for enumerations.
type wireValue struct {
	Value        string `json:"value"`
	DisplayValue string `json:"displayValue"`
}

type wireIntroduction struct {
	Chapter string `json:"chapter"`
	Season  string `json:"season"`
	Text    string `json:"text"`
}

type wireImages struct {
	SmallIcon string `json:"smallIcon"`
	Icon      string `json:"icon"`
	Featured  string `json:"featured"`
}

type wireItem struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Rarity       *wireValue        `json:"rarity"`
	Type         *wireValue        `json:"type"`
	Series       *wireValue        `json:"series"`
	Set          *wireValue        `json:"set"`
	Introduction *wireIntroduction `json:"introduction"`
	Images       *wireImages       `json:"images"`
}

// envelope is the top-level response shape. Data is a pointer so an
// absent field can be told apart from an empty list.
type envelope struct {
	Status int         `json:"status"`
	Data   *[]wireItem `json:"data"`
	Error  string      `json:"error"`
}

func (w wireItem) item() Item {
	it := Item{
		ID:          strings.TrimSpace(w.ID),
		Name:        strings.TrimSpace(w.Name),
		Description: w.Description,
	}
	if w.Rarity != nil {
		it.Rarity = w.Rarity.Value
	}
	if w.Type != nil {
		it.Category = w.Type.Value
	}
	if w.Series != nil {
		it.Series = w.Series.Value
	}
	if w.Set != nil {
		it.Set = w.Set.Value
	}
	if w.Introduction != nil {
		it.Introduction = w.Introduction.Text
	}
	if w.Images != nil {
		it.Icon = w.Images.Icon
		if it.Icon == "" {
			it.Icon = w.Images.SmallIcon
		}
		it.Featured = w.Images.Featured
	}
	return it
}

// Result is a decoded catalog response.
type Result struct {
	Items   []Item
	Skipped int // entries dropped for missing required fields or duplicate IDs
}

// Decode reads a {"data": [...]} envelope. Entries missing a required
// field are skipped, and for duplicate IDs the first occurrence wins.
func Decode(r io.Reader) (Result, error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return Result{}, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Data == nil {
		if env.Error != "" {
			return Result{}, fmt.Errorf("%w: %s", ErrMalformedEnvelope, env.Error)
		}
		return Result{}, ErrMalformedEnvelope
	}

	raw := *env.Data
	res := Result{Items: make([]Item, 0, len(raw))}
	seen := make(map[string]bool, len(raw))
	for _, w := range raw {
		it := w.item()
		if !it.Valid() || seen[it.ID] {
			res.Skipped++
			continue
		}
		seen[it.ID] = true
		res.Items = append(res.Items, it)
	}
	return res, nil
}
