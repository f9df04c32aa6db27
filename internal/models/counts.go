package models

// Counts summarizes the collection the way the category sidebar shows it.
type Counts struct {
	Total       int
	Favorites   int
	PerCategory map[string]int
}
