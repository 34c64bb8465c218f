package dto

import (
	"time"

	"github.com/assocfin/afm_backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a user category.
// System categories are seeded, never created through the API.
type CreateCategoryRequest struct {
	Name string            `json:"name" binding:"required"`
	Kind domain.RecordKind `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
}

// CategoryResponse defines the data returned for a transaction category.
type CategoryResponse struct {
	CategoryID    string            `json:"categoryID"`
	Name          string            `json:"name"`
	Kind          domain.RecordKind `json:"kind"`
	SystemRelated bool              `json:"systemRelated"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// ToCategoryResponse converts a domain.TransactionCategory to CategoryResponse.
func ToCategoryResponse(c *domain.TransactionCategory) CategoryResponse {
	return CategoryResponse{
		CategoryID:    c.CategoryID,
		Name:          c.Name,
		Kind:          c.Kind,
		SystemRelated: c.SystemRelated,
		CreatedAt:     c.CreatedAt,
	}
}

// ToListCategoryResponse converts a slice of categories to response DTOs.
func ToListCategoryResponse(categories []domain.TransactionCategory) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return res
}
