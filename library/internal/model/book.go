package model

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryFiction    Category = "Fiction"
	CategoryNonFiction Category = "Non-Fiction"
	CategoryScience    Category = "Science"
	CategoryTechnology Category = "Technology"
	CategoryHistory    Category = "History"
	CategoryBiography  Category = "Biography"
	CategoryMystery    Category = "Mystery"
	CategoryRomance    Category = "Romance"
	CategoryFantasy    Category = "Fantasy"
	CategorySelfHelp   Category = "Self-Help"
	CategoryBusiness   Category = "Business"
	CategoryHealth     Category = "Health"
	CategoryEducation  Category = "Education"
	CategoryGeneral    Category = "General"
)

var Categories = []Category{
	CategoryFiction, CategoryNonFiction, CategoryScience, CategoryTechnology,
	CategoryHistory, CategoryBiography, CategoryMystery, CategoryRomance,
	CategoryFantasy, CategorySelfHelp, CategoryBusiness, CategoryHealth,
	CategoryEducation, CategoryGeneral,
}

func (c Category) Valid() bool {
	for _, cat := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// Book invariant: Availability == (CurrentBorrower == nil).
type Book struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	Title           string     `json:"title" db:"title"`
	Author          string     `json:"author" db:"author"`
	ISBN            *string    `json:"isbn,omitempty" db:"isbn"`
	Description     string     `json:"description" db:"description"`
	Category        Category   `json:"category" db:"category"`
	Availability    bool       `json:"availability" db:"availability"`
	CurrentBorrower *uuid.UUID `json:"currentBorrower,omitempty" db:"current_borrower"`
	PublishedYear   *int       `json:"publishedYear,omitempty" db:"published_year"`
	Pages           *int       `json:"pages,omitempty" db:"pages"`
	AddedDate       time.Time  `json:"addedDate" db:"added_date"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
}

// BookView is a book with its current borrower's name resolved.
type BookView struct {
	Book         `json:",inline"`
	BorrowerName *string `json:"borrowerName,omitempty" db:"borrower_name"`
}

type BookRequest struct {
	Title         string   `json:"title" validate:"required"`
	Author        string   `json:"author" validate:"required"`
	Category      Category `json:"category" validate:"required"`
	Description   string   `json:"description"`
	ISBN          string   `json:"isbn"`
	PublishedYear *int     `json:"publishedYear" validate:"omitempty,min=1000"`
	Pages         *int     `json:"pages" validate:"omitempty,min=1"`
}

type BookFilter struct {
	Search   string
	Category Category
	// Availability is nil when both states are wanted.
	Availability *bool
}

type ListBooks struct {
	Paging `json:",inline"`
	Items  []BookView `json:"items"`
}
