package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/recipe-finder/backend/internal/recipe"
)

var (
	// ErrUnsupportedFormat is returned for dataset files with an unknown extension
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	// ErrMalformed is returned when the dataset cannot be parsed
	ErrMalformed = errors.New("malformed dataset")
	// ErrMissingColumn is returned when a required column is absent from the header
	ErrMissingColumn = errors.New("missing required column")
)

const (
	IngredientsColumn = "Ingredients"
	CategoryColumn    = "Category"
)

// nameColumns are tried in order to find the recipe name column
var nameColumns = []string{"Name", "Recipe Name", "RecipeName", "Title", "Recipe"}

// CorpusStorage defines the interface for loading the recipe dataset
type CorpusStorage interface {
	Load() (*recipe.Corpus, error)
}

// Format identifies a dataset file encoding
type Format string

const (
	FormatCSV     Format = "csv"
	FormatTSV     Format = "tsv"
	FormatJSON    Format = "json"
	FormatParquet Format = "parquet"
)

// FileStorage implements CorpusStorage for a single file on the local file system
type FileStorage struct {
	path   string
	format Format
}

// NewFileStorage picks the reader from the file extension.
// The file itself is not opened until Load.
func NewFileStorage(path string) (*FileStorage, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return &FileStorage{path: path, format: format}, nil
}

// FormatFromPath maps a file extension to a Format
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".tsv":
		return FormatTSV, nil
	case ".json":
		return FormatJSON, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Path returns the dataset file path
func (fs *FileStorage) Path() string {
	return fs.path
}

// Format returns the dataset encoding
func (fs *FileStorage) Format() Format {
	return fs.format
}

// Load reads the whole file and builds the corpus
func (fs *FileStorage) Load() (*recipe.Corpus, error) {
	t, err := fs.readTable()
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", fs.path, err)
	}

	corpus, err := t.toCorpus()
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", fs.path, err)
	}
	return corpus, nil
}

func (fs *FileStorage) readTable() (*table, error) {
	switch fs.format {
	case FormatCSV:
		return readDelimited(fs.path, ',')
	case FormatTSV:
		return readDelimited(fs.path, '\t')
	case FormatJSON:
		return readJSON(fs.path)
	case FormatParquet:
		return readParquet(fs.path)
	}
	return nil, ErrUnsupportedFormat
}

// table is the raw, untyped form every reader produces
type table struct {
	header []string
	rows   [][]string
}

func (t *table) toCorpus() (*recipe.Corpus, error) {
	ingredients := findColumn(t.header, IngredientsColumn)
	if ingredients < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, IngredientsColumn)
	}
	category := findColumn(t.header, CategoryColumn)
	if category < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, CategoryColumn)
	}
	name := -1
	for _, candidate := range nameColumns {
		if name = findColumn(t.header, candidate); name >= 0 {
			break
		}
	}

	recipes := make([]recipe.Recipe, len(t.rows))
	for i, row := range t.rows {
		values := make([]string, len(t.header))
		copy(values, row)
		r := recipe.Recipe{
			Ingredients: values[ingredients],
			Category:    values[category],
			Values:      values,
		}
		if name >= 0 {
			r.Name = values[name]
		}
		recipes[i] = r
	}

	return recipe.NewCorpus(t.header, recipes), nil
}

// findColumn prefers an exact match and falls back to a case-insensitive one
func findColumn(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	return f, nil
}
