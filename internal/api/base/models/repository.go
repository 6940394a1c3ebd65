// Package models holds the shared types of the base repository layer.
package models

// PaginateResult is a page of query results.
type PaginateResult[T any] struct {
	// Current page, 1-based
	Page int64 `json:"page" bson:"page"`
	// Requested page size
	Limit int64 `json:"limit" bson:"limit"`
	// Number of items in this page
	ItemCount int64 `json:"itemCount" bson:"itemCount"`
	// The items
	Items []T `json:"items" bson:"items"`
	// Total matching items
	Total int64 `json:"total" bson:"total"`
	// Total number of pages
	TotalPage int64 `json:"totalPage" bson:"totalPage"`
}
