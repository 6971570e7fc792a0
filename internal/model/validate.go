package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCategory is returned when a category is not one of the
	// enumerated photo categories.
	ErrInvalidCategory = errors.New("category must be one of: nature, architecture, portrait, landscape, street")

	// ErrInvalidTheme is returned when a theme value is not light or dark.
	ErrInvalidTheme = errors.New("theme must be one of: light, dark")
)

// Category classifies a photo. CategoryAll is a filter sentinel only and is
// never a valid category for a stored photo.
type Category string

const (
	CategoryAll          Category = "all"
	CategoryNature       Category = "nature"
	CategoryArchitecture Category = "architecture"
	CategoryPortrait     Category = "portrait"
	CategoryLandscape    Category = "landscape"
	CategoryStreet       Category = "street"
)

// ValidateCategory checks that c is an assignable photo category.
func ValidateCategory(c Category) error {
	switch c {
	case CategoryNature, CategoryArchitecture, CategoryPortrait, CategoryLandscape, CategoryStreet:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCategory, c)
	}
}

// Theme is the persisted UI theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ValidateTheme checks that t is an allowed theme value.
func ValidateTheme(t Theme) error {
	switch t {
	case ThemeLight, ThemeDark:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTheme, t)
	}
}
