package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Product represents a catalog product with per-language text fields.
// Image references are stored as a single comma-delimited column and
// expanded into a slice at the API boundary.
type Product struct {
	ID            uuid.UUID `json:"id" db:"id"`
	NameEn        string    `json:"name_en" db:"name_en"`
	NameAr        string    `json:"name_ar" db:"name_ar"`
	DescriptionEn string    `json:"description_en" db:"description_en"`
	DescriptionAr string    `json:"description_ar" db:"description_ar"`
	CategoryEn    string    `json:"category_en" db:"category_en"`
	CategoryAr    string    `json:"category_ar" db:"category_ar"`
	Price         float64   `json:"price" db:"price"`
	ImageURLs     string    `json:"image_urls" db:"image_urls"`
	Show          bool      `json:"show" db:"visible"`
}

// LocalizedProduct is a Product resolved to a single language.
type LocalizedProduct struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	ImageURLs   []string  `json:"img_urls"`
}

// CategoryCount pairs a localized category name with its product count.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// SplitImageURLs expands the stored delimited image column into an
// ordered list. An empty column yields an empty list, not [""].
func SplitImageURLs(stored string) []string {
	if stored == "" {
		return []string{}
	}
	return strings.Split(stored, ",")
}

// JoinImageURLs collapses an image list back into the stored form.
func JoinImageURLs(urls []string) string {
	return strings.Join(urls, ",")
}
