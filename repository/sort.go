package repository

import "github.com/emzola/critica/data"

// Sort safelists carry wire names from the query string, which do not always
// match the schema: pub_date is stored as created_at, and the title queries
// join tables whose output labels collide on id and name. These maps translate
// each wire name to the qualified column the ORDER BY clause needs.
var (
	titleSortColumns = map[string]string{
		"id":   "titles.id",
		"name": "titles.name",
		"year": "titles.year",
	}
	reviewSortColumns = map[string]string{
		"id":       "reviews.id",
		"score":    "reviews.score",
		"pub_date": "reviews.created_at",
	}
	commentSortColumns = map[string]string{
		"id":       "comments.id",
		"pub_date": "comments.created_at",
	}
)

// sortColumn resolves the safelisted sort field to its database column.
func sortColumn(filters data.Filters, columns map[string]string) string {
	column, ok := columns[filters.SortColumn()]
	if !ok {
		panic("unmapped sort parameter: " + filters.Sort)
	}
	return column
}
