package data

import (
	"testing"
	"time"

	"github.com/emzola/critica/internal/validator"
	"github.com/stretchr/testify/assert"
)

func TestValidateTitle(t *testing.T) {
	currentYear := int32(time.Now().Year())
	tests := []struct {
		name    string
		title   Title
		field   string
		wantErr string
	}{
		{name: "valid", title: Title{Name: "Solaris", Year: 1972}},
		{name: "valid current year", title: Title{Name: "New Release", Year: currentYear}},
		{name: "valid negative year", title: Title{Name: "Odyssey", Year: -700}},
		{name: "missing name", title: Title{Year: 1972}, field: "name", wantErr: "must be provided"},
		{name: "missing year", title: Title{Name: "Solaris"}, field: "year", wantErr: "must be provided"},
		{name: "future year", title: Title{Name: "Solaris", Year: currentYear + 1}, field: "year", wantErr: "must not be in the future"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateTitle(v, &tt.title)
			if tt.wantErr == "" {
				assert.True(t, v.Valid())
				return
			}
			assert.Equal(t, tt.wantErr, v.Errors[tt.field])
		})
	}
}

func TestValidateGenreSlugs(t *testing.T) {
	v := validator.New()
	ValidateGenreSlugs(v, []string{"drama", "sci-fi"})
	assert.True(t, v.Valid())

	v = validator.New()
	ValidateGenreSlugs(v, nil)
	assert.Equal(t, "must contain at least 1 genre", v.Errors["genre"])

	v = validator.New()
	ValidateGenreSlugs(v, []string{"drama", "drama"})
	assert.Equal(t, "must not contain duplicate values", v.Errors["genre"])
}
