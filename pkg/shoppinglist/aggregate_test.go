package shoppinglist

import (
	"testing"

	"foodgram/domain"
	"foodgram/entities"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

var ingredientPool = []struct{ name, unit string }{
	{"flour", "g"},
	{"Flour", "g"},
	{"flour", "kg"},
	{"egg", "pc"},
	{"milk", "ml"},
	{"Äpfel", "pc"},
	{"apple", "pc"},
	{"sugar", "g"},
}

func buildLines(picks []int, amounts []int64) []entities.CartIngredientLine {
	lines := make([]entities.CartIngredientLine, 0, len(picks))
	for i := 0; i < len(picks) && i < len(amounts); i++ {
		p := ingredientPool[picks[i]]
		lines = append(lines, entities.CartIngredientLine{
			Name:            p.name,
			MeasurementUnit: p.unit,
			TotalAmount:     amounts[i],
		})
	}
	return lines
}

func TestAggregateMergesSameNameAndUnit(t *testing.T) {
	items := Aggregate([]entities.CartIngredientLine{
		{Name: "flour", MeasurementUnit: "g", TotalAmount: 200},
		{Name: "egg", MeasurementUnit: "pc", TotalAmount: 2},
		{Name: "flour", MeasurementUnit: "g", TotalAmount: 100},
		{Name: "milk", MeasurementUnit: "ml", TotalAmount: 50},
	})

	assert.Equal(t, []domain.ShoppingListItem{
		{Name: "egg", MeasurementUnit: "pc", TotalAmount: 2},
		{Name: "flour", MeasurementUnit: "g", TotalAmount: 300},
		{Name: "milk", MeasurementUnit: "ml", TotalAmount: 50},
	}, items)
}

func TestAggregateKeepsDifferentUnitsApart(t *testing.T) {
	items := Aggregate([]entities.CartIngredientLine{
		{Name: "flour", MeasurementUnit: "kg", TotalAmount: 1},
		{Name: "flour", MeasurementUnit: "g", TotalAmount: 100},
	})

	assert.Equal(t, []domain.ShoppingListItem{
		{Name: "flour", MeasurementUnit: "g", TotalAmount: 100},
		{Name: "flour", MeasurementUnit: "kg", TotalAmount: 1},
	}, items)
}

func TestAggregateEmpty(t *testing.T) {
	items := Aggregate(nil)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestAggregateSortIgnoresCase(t *testing.T) {
	items := Aggregate([]entities.CartIngredientLine{
		{Name: "banana", MeasurementUnit: "pc", TotalAmount: 1},
		{Name: "Apple", MeasurementUnit: "pc", TotalAmount: 1},
		{Name: "cherry", MeasurementUnit: "g", TotalAmount: 1},
	})

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	assert.Equal(t, []string{"Apple", "banana", "cherry"}, names)
}

func TestAggregateLargeTotals(t *testing.T) {
	items := Aggregate([]entities.CartIngredientLine{
		{Name: "rice", MeasurementUnit: "g", TotalAmount: 1 << 40},
		{Name: "rice", MeasurementUnit: "g", TotalAmount: 1 << 40},
	})

	assert.Equal(t, int64(1<<41), items[0].TotalAmount)
}

func TestAggregateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	picks := gen.SliceOf(gen.IntRange(0, len(ingredientPool)-1))
	amounts := gen.SliceOf(gen.Int64Range(1, 1_000_000))

	properties.Property("totals per name and unit are preserved", prop.ForAll(
		func(picks []int, amounts []int64) bool {
			lines := buildLines(picks, amounts)

			want := map[lineKey]int64{}
			for _, l := range lines {
				want[lineKey{l.Name, l.MeasurementUnit}] += l.TotalAmount
			}

			items := Aggregate(lines)
			if len(items) != len(want) {
				return false
			}
			for _, item := range items {
				if want[lineKey{item.Name, item.MeasurementUnit}] != item.TotalAmount {
					return false
				}
			}
			return true
		},
		picks, amounts,
	))

	properties.Property("output is sorted and free of duplicate keys", prop.ForAll(
		func(picks []int, amounts []int64) bool {
			items := Aggregate(buildLines(picks, amounts))

			seen := map[lineKey]bool{}
			for _, item := range items {
				key := lineKey{item.Name, item.MeasurementUnit}
				if seen[key] {
					return false
				}
				seen[key] = true
			}

			sorted := append([]domain.ShoppingListItem(nil), items...)
			SortItems(sorted)
			for i := range items {
				if items[i] != sorted[i] {
					return false
				}
			}
			return true
		},
		picks, amounts,
	))

	properties.Property("input order does not change the result", prop.ForAll(
		func(picks []int, amounts []int64) bool {
			lines := buildLines(picks, amounts)
			reversed := make([]entities.CartIngredientLine, len(lines))
			for i, l := range lines {
				reversed[len(lines)-1-i] = l
			}

			a, b := Aggregate(lines), Aggregate(reversed)
			if len(a) != len(b) {
				return false
			}
			for i := range a {
				if a[i] != b[i] {
					return false
				}
			}
			return true
		},
		picks, amounts,
	))

	properties.TestingRun(t)
}
