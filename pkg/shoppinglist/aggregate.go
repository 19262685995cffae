package shoppinglist

import (
	"cmp"
	"slices"

	"foodgram/domain"
	"foodgram/entities"

	"golang.org/x/text/cases"
)

type lineKey struct {
	name string
	unit string
}

// Aggregate merges cart lines that share a name and measurement unit into a
// single item and returns the items in list order. The same name with a
// different unit stays a separate item.
func Aggregate(lines []entities.CartIngredientLine) []domain.ShoppingListItem {
	totals := make(map[lineKey]int64, len(lines))
	for _, line := range lines {
		totals[lineKey{name: line.Name, unit: line.MeasurementUnit}] += line.TotalAmount
	}

	items := make([]domain.ShoppingListItem, 0, len(totals))
	for key, total := range totals {
		items = append(items, domain.ShoppingListItem{
			Name:            key.name,
			MeasurementUnit: key.unit,
			TotalAmount:     total,
		})
	}
	SortItems(items)
	return items
}

// SortItems orders items by case-folded name, then raw name, then unit.
func SortItems(items []domain.ShoppingListItem) {
	// a Caser keeps state and must not be shared between goroutines
	fold := cases.Fold()
	keys := make(map[string]string, len(items))
	for _, item := range items {
		if _, ok := keys[item.Name]; !ok {
			keys[item.Name] = fold.String(item.Name)
		}
	}

	slices.SortFunc(items, func(a, b domain.ShoppingListItem) int {
		if c := cmp.Compare(keys[a.Name], keys[b.Name]); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.MeasurementUnit, b.MeasurementUnit)
	})
}
