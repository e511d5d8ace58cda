package model

// Category is a named grouping for bookmarks. A fixed recognized set drives
// the default filter chips and glyph lookup; any other value is a free-form
// custom category rendered with the fallback style.
type Category string

const (
	CategoryWork          Category = "Work"
	CategoryPersonal      Category = "Personal"
	CategoryDev           Category = "Dev"
	CategoryDesign        Category = "Design"
	CategoryNews          Category = "News"
	CategoryEntertainment Category = "Entertainment"
	CategoryLearning      Category = "Learning"
	CategorySocial        Category = "Social"
	CategoryUncategorized Category = "Uncategorized"
)

// RecognizedCategories returns the fixed recognized set in display order.
func RecognizedCategories() []Category {
	return []Category{
		CategoryWork,
		CategoryPersonal,
		CategoryDev,
		CategoryDesign,
		CategoryNews,
		CategoryEntertainment,
		CategoryLearning,
		CategorySocial,
		CategoryUncategorized,
	}
}

var categoryGlyphs = map[Category]string{
	CategoryWork:          "◆",
	CategoryPersonal:      "●",
	CategoryDev:           "λ",
	CategoryDesign:        "✎",
	CategoryNews:          "■",
	CategoryEntertainment: "▶",
	CategoryLearning:      "◉",
	CategorySocial:        "@",
	CategoryUncategorized: "·",
}

// Recognized reports whether c is part of the fixed recognized set.
func (c Category) Recognized() bool {
	_, ok := categoryGlyphs[c]
	return ok
}

// Glyph returns the display glyph for a category. Custom categories get
// the fallback glyph, so the lookup is total.
func (c Category) Glyph() string {
	if g, ok := categoryGlyphs[c]; ok {
		return g
	}
	return "○"
}
