package common

// Durable entry keys in the key-value store.
const (
	KeyAnswers    = "answers"
	KeyCategories = "categories"
)

// Reserved category names.
const (
	// CategoryAll disables category filtering.
	CategoryAll = "all"
	// CategoryFavorites is the synthetic favorites filter. It is never a real,
	// assignable category.
	CategoryFavorites = "Favoriten"
	// CategoryUncategorized is assigned to answers stored without a category.
	CategoryUncategorized = "Uncategorized"
)
