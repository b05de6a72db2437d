// File: internal/model/library_item.go
package model

import "time"

// DefaultAvailableCopies 建立館藏時未指定數量的預設值
const DefaultAvailableCopies = 1

type LibraryItem struct {
	ID              int       `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Author          string    `db:"author" json:"author"`
	Genre           string    `db:"genre" json:"genre,omitempty"`
	PublishedYear   int       `db:"published_year" json:"published_year"`
	Description     string    `db:"description" json:"description,omitempty"`
	AvailableCopies int       `db:"available_copies" json:"available_copies"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// LibraryItemPatch 描述部分更新；nil 欄位保持原值
type LibraryItemPatch struct {
	Title           *string
	Author          *string
	Genre           *string
	PublishedYear   *int
	Description     *string
	AvailableCopies *int
}

// Apply 將非 nil 欄位套用到 item
func (p LibraryItemPatch) Apply(item *LibraryItem) {
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Author != nil {
		item.Author = *p.Author
	}
	if p.Genre != nil {
		item.Genre = *p.Genre
	}
	if p.PublishedYear != nil {
		item.PublishedYear = *p.PublishedYear
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.AvailableCopies != nil {
		item.AvailableCopies = *p.AvailableCopies
	}
}

// LibraryItemFilter 列表查詢條件
type LibraryItemFilter struct {
	Author        string
	Genre         string
	PublishedYear int
	Skip          int
	Limit         int
}
