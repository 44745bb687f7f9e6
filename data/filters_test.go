package data

import (
	"testing"

	"github.com/emzola/critica/internal/validator"
	"github.com/stretchr/testify/assert"
)

func TestFiltersSorting(t *testing.T) {
	f := Filters{Sort: "-year", SortSafeList: []string{"id", "year", "-id", "-year"}}
	assert.Equal(t, "year", f.SortColumn())
	assert.Equal(t, "DESC", f.SortDirection())

	f.Sort = "id"
	assert.Equal(t, "id", f.SortColumn())
	assert.Equal(t, "ASC", f.SortDirection())

	f.Sort = "id; DROP TABLE titles"
	assert.Panics(t, func() { f.SortColumn() })
}

func TestFiltersLimitOffset(t *testing.T) {
	f := Filters{Page: 3, PageSize: 20}
	assert.Equal(t, 20, f.Limit())
	assert.Equal(t, 40, f.Offset())
}

func TestValidateFilters(t *testing.T) {
	safelist := []string{"id", "-id"}
	v := validator.New()
	ValidateFilters(v, Filters{Page: 1, PageSize: 10, Sort: "id", SortSafeList: safelist})
	assert.True(t, v.Valid())

	v = validator.New()
	ValidateFilters(v, Filters{Page: 0, PageSize: 101, Sort: "name", SortSafeList: safelist})
	assert.Equal(t, "must be greater than zero", v.Errors["page"])
	assert.Equal(t, "must be a maximum of 100", v.Errors["page_size"])
	assert.Equal(t, "invalid sort value", v.Errors["sort"])
}

func TestCalculateMetadata(t *testing.T) {
	metadata := CalculateMetadata(101, 2, 25)
	assert.Equal(t, 2, metadata.CurrentPage)
	assert.Equal(t, 25, metadata.PageSize)
	assert.Equal(t, 1, metadata.FirstPage)
	assert.Equal(t, 5, metadata.LastPage)
	assert.Equal(t, 101, metadata.TotalRecords)

	assert.Equal(t, Metadata{}, CalculateMetadata(0, 1, 25))
}
