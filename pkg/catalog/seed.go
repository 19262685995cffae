package catalog

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"foodgram/domain"

	"gopkg.in/yaml.v2"
)

var ErrUnknownSeedFormat = errors.New("unknown seed file format")

const (
	SeedFormatCSV  = "csv"
	SeedFormatJSON = "json"
)

// SeedFormat derives the seed format from a file extension.
func SeedFormat(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// ParseIngredients reads "name,measurement_unit" CSV rows (an optional
// header row is skipped) or a JSON array of ingredient objects.
func ParseIngredients(r io.Reader, format string) ([]domain.IngredientSeed, error) {
	switch format {
	case SeedFormatCSV:
		return parseIngredientsCSV(r)
	case SeedFormatJSON:
		var seeds []domain.IngredientSeed
		if err := json.NewDecoder(r).Decode(&seeds); err != nil {
			return nil, fmt.Errorf("decode ingredients json: %w", err)
		}
		return seeds, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSeedFormat, format)
	}
}

func parseIngredientsCSV(r io.Reader) ([]domain.IngredientSeed, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	var seeds []domain.IngredientSeed
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read ingredients csv: %w", err)
		}
		if line == 1 && strings.EqualFold(record[0], "name") {
			continue
		}
		seeds = append(seeds, domain.IngredientSeed{Name: record[0], MeasurementUnit: record[1]})
	}
	return seeds, nil
}

// ParseTags reads a YAML list of tags.
func ParseTags(r io.Reader) ([]domain.TagSeed, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read tags yaml: %w", err)
	}

	var seeds []domain.TagSeed
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("decode tags yaml: %w", err)
	}
	return seeds, nil
}
