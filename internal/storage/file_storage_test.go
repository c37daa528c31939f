package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipe-finder/backend/internal/storage"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func load(t *testing.T, path string) (*storage.FileStorage, error) {
	t.Helper()
	fs, err := storage.NewFileStorage(path)
	require.NoError(t, err)
	_, err = fs.Load()
	return fs, err
}

func TestFileStorage_CSV(t *testing.T) {
	path := writeFile(t, "recipes.csv",
		"Recipe Name,Ingredients,Category,Cook Time\n"+
			"Tomato Soup,tomato onion garlic,Soup,30\n"+
			"Garlic Bread,\"garlic, butter, bread\",Side,15\n")

	fs, err := storage.NewFileStorage(path)
	require.NoError(t, err)
	assert.Equal(t, storage.FormatCSV, fs.Format())

	corpus, err := fs.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"Recipe Name", "Ingredients", "Category", "Cook Time"}, corpus.Header)
	require.Equal(t, 2, corpus.Len())

	first := corpus.At(0)
	assert.Equal(t, "Tomato Soup", first.Name)
	assert.Equal(t, "tomato onion garlic", first.Ingredients)
	assert.Equal(t, "Soup", first.Category)
	assert.Equal(t, "30", first.Value(3))

	second := corpus.At(1)
	assert.Equal(t, 1, second.Row)
	assert.Equal(t, "garlic, butter, bread", second.Ingredients)
}

func TestFileStorage_MissingIngredientsAreEmpty(t *testing.T) {
	path := writeFile(t, "recipes.csv",
		"Name,Category,Ingredients\n"+
			"Plain Rice,Side,\n"+
			"Short Row,Main\n")

	fs, err := storage.NewFileStorage(path)
	require.NoError(t, err)
	corpus, err := fs.Load()
	require.NoError(t, err)

	require.Equal(t, 2, corpus.Len())
	assert.Equal(t, "", corpus.At(0).Ingredients)
	assert.Equal(t, "", corpus.At(1).Ingredients)
	assert.Equal(t, "Main", corpus.At(1).Category)
	assert.Len(t, corpus.At(1).Values, 3)
}

func TestFileStorage_TSVAndBOM(t *testing.T) {
	path := writeFile(t, "recipes.tsv", "\uFEFFName\tIngredients\tCategory\nPesto\tbasil pine nuts\tSauce\n")

	fs, err := storage.NewFileStorage(path)
	require.NoError(t, err)
	corpus, err := fs.Load()
	require.NoError(t, err)

	assert.Equal(t, "Name", corpus.Header[0])
	assert.Equal(t, "Pesto", corpus.At(0).Name)
	assert.Equal(t, "basil pine nuts", corpus.At(0).Ingredients)
}

func TestFileStorage_CaseInsensitiveColumns(t *testing.T) {
	path := writeFile(t, "recipes.csv", "title,ingredients,category\nPancakes,flour egg milk,Breakfast\n")

	fs, err := storage.NewFileStorage(path)
	require.NoError(t, err)
	corpus, err := fs.Load()
	require.NoError(t, err)

	assert.Equal(t, "Pancakes", corpus.At(0).Name)
	assert.Equal(t, "flour egg milk", corpus.At(0).Ingredients)
	assert.Equal(t, "Breakfast", corpus.At(0).Category)
}

func TestFileStorage_NoNameColumn(t *testing.T) {
	path := writeFile(t, "recipes.csv", "Ingredients,Category\negg,Breakfast\n")

	fs, err := storage.NewFileStorage(path)
	require.NoError(t, err)
	corpus, err := fs.Load()
	require.NoError(t, err)

	assert.Equal(t, "", corpus.At(0).Name)
}

func TestFileStorage_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    error
	}{
		{"missing ingredients", "a.csv", "Name,Category\nx,y\n", storage.ErrMissingColumn},
		{"missing category", "b.csv", "Name,Ingredients\nx,y\n", storage.ErrMissingColumn},
		{"empty file", "c.csv", "", storage.ErrMalformed},
		{"long row", "d.csv", "Ingredients,Category\na,b,c\n", storage.ErrMalformed},
		{"bad quotes", "e.csv", "Ingredients,Category\n\"a,b\n", storage.ErrMalformed},
		{"json not array", "f.json", `{"Ingredients": "a"}`, storage.ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(t, writeFile(t, tt.file, tt.content))
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestFileStorage_MissingFile(t *testing.T) {
	_, err := load(t, filepath.Join(t.TempDir(), "missing.csv"))

	assert.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestNewFileStorage_UnsupportedFormat(t *testing.T) {
	_, err := storage.NewFileStorage("recipes.xlsx")

	assert.True(t, errors.Is(err, storage.ErrUnsupportedFormat))
}

func TestFileStorage_JSON(t *testing.T) {
	path := writeFile(t, "recipes.json", `[
		{"Name": "Omelette", "Ingredients": "egg cheese", "Category": "Breakfast", "Servings": 2},
		{"Name": "Toast", "Ingredients": null, "Category": "Breakfast", "Vegan": true}
	]`)

	fs, err := storage.NewFileStorage(path)
	require.NoError(t, err)
	corpus, err := fs.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"Category", "Ingredients", "Name", "Servings", "Vegan"}, corpus.Header)
	require.Equal(t, 2, corpus.Len())
	assert.Equal(t, "egg cheese", corpus.At(0).Ingredients)
	assert.Equal(t, "2", corpus.At(0).Value(3))
	assert.Equal(t, "", corpus.At(1).Ingredients)
	assert.Equal(t, "true", corpus.At(1).Value(4))
}

type parquetRecipe struct {
	Name        string  `parquet:"Name"`
	Ingredients *string `parquet:"Ingredients,optional"`
	Category    string  `parquet:"Category"`
}

func TestFileStorage_Parquet(t *testing.T) {
	ingredients := "tomato basil"
	path := filepath.Join(t.TempDir(), "recipes.parquet")
	require.NoError(t, parquet.WriteFile(path, []parquetRecipe{
		{Name: "Bruschetta", Ingredients: &ingredients, Category: "Starter"},
		{Name: "Water", Ingredients: nil, Category: "Drink"},
	}))

	fs, err := storage.NewFileStorage(path)
	require.NoError(t, err)
	assert.Equal(t, storage.FormatParquet, fs.Format())

	corpus, err := fs.Load()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Name", "Ingredients", "Category"}, corpus.Header)
	require.Equal(t, 2, corpus.Len())
	assert.Equal(t, "Bruschetta", corpus.At(0).Name)
	assert.Equal(t, "tomato basil", corpus.At(0).Ingredients)
	assert.Equal(t, "Starter", corpus.At(0).Category)
	assert.Equal(t, "", corpus.At(1).Ingredients)
	assert.Equal(t, "Drink", corpus.At(1).Category)
}
