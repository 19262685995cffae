package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"foodgram/entities"
	"foodgram/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"serve", "migrate", "load-ingredients", "load-tags"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestRootCommandFlags(t *testing.T) {
	cmd := NewRootCommand()

	flag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "c", flag.Shorthand)

	serve, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)
	assert.NotNil(t, serve.Flags().Lookup("skip-migrate"))
}

func TestLoadCommandsRequireFile(t *testing.T) {
	for _, name := range []string{"load-ingredients", "load-tags"} {
		cmd := NewRootCommand()
		cmd.SetArgs([]string{name})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		assert.Error(t, cmd.Execute(), name)
	}
}

func TestLoadIngredientsTwice(t *testing.T) {
	db := testdb.New(t)
	path := filepath.Join(t.TempDir(), "ingredients.csv")
	require.NoError(t, os.WriteFile(path, []byte("flour,g\negg,pc\nmilk,ml\n"), 0o644))

	var out bytes.Buffer
	require.NoError(t, loadIngredients(context.Background(), db, path, &out))
	assert.Equal(t, "3 of 3 ingredients added\n", out.String())

	out.Reset()
	require.NoError(t, loadIngredients(context.Background(), db, path, &out))
	assert.Equal(t, "0 of 3 ingredients added\n", out.String())

	var count int64
	require.NoError(t, db.Model(&entities.Ingredient{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestLoadIngredientsMissingFile(t *testing.T) {
	db := testdb.New(t)
	err := loadIngredients(context.Background(), db, filepath.Join(t.TempDir(), "absent.json"), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestLoadTags(t *testing.T) {
	db := testdb.New(t)
	path := filepath.Join(t.TempDir(), "tags.yaml")
	input := "- name: Breakfast\n  color: \"#E26C2D\"\n  slug: breakfast\n- name: Dinner\n  color: \"#49B64E\"\n  slug: dinner\n"
	require.NoError(t, os.WriteFile(path, []byte(input), 0o644))

	require.NoError(t, loadTags(context.Background(), db, path, &bytes.Buffer{}))

	var tags []entities.Tag
	require.NoError(t, db.Order("slug").Find(&tags).Error)
	require.Len(t, tags, 2)
	assert.Equal(t, "Breakfast", tags[0].Name)
	assert.Equal(t, "#49B64E", tags[1].Color)
}
