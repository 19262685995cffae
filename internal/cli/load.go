package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"foodgram/cmd/config"
	migration "foodgram/cmd/database/migrate"
	"foodgram/pkg/catalog"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// NewLoadIngredientsCommand creates the load-ingredients command.
func NewLoadIngredientsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "load-ingredients <file.csv|file.json>",
		Short: "Import the ingredient catalog",
		Long: `Import ingredients from a CSV file with "name,measurement_unit" rows
or a JSON array of {"name", "measurement_unit"} objects. Ingredients that
already exist are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openMigrated()
			if err != nil {
				return err
			}
			return loadIngredients(cmd.Context(), db, args[0], cmd.OutOrStdout())
		},
	}
}

// NewLoadTagsCommand creates the load-tags command.
func NewLoadTagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "load-tags <file.yaml>",
		Short: "Import or update tags from a YAML list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openMigrated()
			if err != nil {
				return err
			}
			return loadTags(cmd.Context(), db, args[0], cmd.OutOrStdout())
		},
	}
}

func openMigrated() (*gorm.DB, error) {
	db, err := config.ConnectDB()
	if err != nil {
		return nil, err
	}
	if err := migration.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func loadIngredients(ctx context.Context, db *gorm.DB, path string, out io.Writer) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	seeds, err := catalog.ParseIngredients(file, catalog.SeedFormat(path))
	if err != nil {
		return err
	}

	added, err := catalog.NewCatalogService(catalog.NewCatalogRepository(db), 0).ImportIngredients(contextOrBackground(ctx), seeds)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d of %d ingredients added\n", added, len(seeds))
	return nil
}

func loadTags(ctx context.Context, db *gorm.DB, path string, out io.Writer) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	seeds, err := catalog.ParseTags(file)
	if err != nil {
		return err
	}

	written, err := catalog.NewCatalogService(catalog.NewCatalogRepository(db), 0).ImportTags(contextOrBackground(ctx), seeds)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d tags written\n", written)
	return nil
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
