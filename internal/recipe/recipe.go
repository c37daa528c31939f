package recipe

// Recipe is one dataset row
type Recipe struct {
	Row         int    `json:"row" yaml:"row"`
	Name        string `json:"name" yaml:"name"`
	Ingredients string `json:"ingredients" yaml:"ingredients"`
	Category    string `json:"category" yaml:"category"`
	// Values holds every original column, aligned with Corpus.Header
	Values []string `json:"values" yaml:"values"`
}

// Value returns the cell for the given header column, or "" when absent
func (r Recipe) Value(col int) string {
	if col < 0 || col >= len(r.Values) {
		return ""
	}
	return r.Values[col]
}

// Corpus is the ordered, read-only set of recipes loaded at startup
type Corpus struct {
	Header  []string
	recipes []Recipe
}

// NewCorpus builds a corpus and stamps each recipe with its row position.
// The slice is copied so later changes by the caller cannot leak in.
func NewCorpus(header []string, recipes []Recipe) *Corpus {
	rs := make([]Recipe, len(recipes))
	copy(rs, recipes)
	for i := range rs {
		rs[i].Row = i
	}
	h := make([]string, len(header))
	copy(h, header)
	return &Corpus{Header: h, recipes: rs}
}

// Len returns the number of recipes
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.recipes)
}

// At returns the recipe at row i
func (c *Corpus) At(i int) Recipe {
	return c.recipes[i]
}

// Recipes returns a copy of all recipes in row order
func (c *Corpus) Recipes() []Recipe {
	out := make([]Recipe, c.Len())
	if c != nil {
		copy(out, c.recipes)
	}
	return out
}

// Ingredients returns the ingredient text of every recipe in row order
func (c *Corpus) Ingredients() []string {
	out := make([]string, c.Len())
	for i := range out {
		out[i] = c.recipes[i].Ingredients
	}
	return out
}

// Categories returns distinct non-empty categories in first-appearance order
func (c *Corpus) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for i := 0; i < c.Len(); i++ {
		cat := c.recipes[i].Category
		if cat == "" || seen[cat] {
			continue
		}
		seen[cat] = true
		cats = append(cats, cat)
	}
	return cats
}
