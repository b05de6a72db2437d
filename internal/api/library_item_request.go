// File: internal/api/library_item_request.go
package api

import "library-catalog/internal/model"

// swagger:model api.CreateLibraryItemRequest
type CreateLibraryItemRequest struct {
	Title         string `json:"title" validate:"required,max=255" example:"Clean Code"`
	Author        string `json:"author" validate:"required,max=255" example:"Robert C. Martin"`
	Genre         string `json:"genre" validate:"max=100" example:"Software"`
	PublishedYear int    `json:"published_year" validate:"required" example:"2008"`
	Description   string `json:"description" example:"A handbook of agile software craftsmanship"`
	// 未提供時預設為 1
	AvailableCopies *int `json:"available_copies" validate:"omitempty,min=0" example:"3"`
}

// ToModel 轉換為待寫入的館藏
func (r CreateLibraryItemRequest) ToModel() *model.LibraryItem {
	copies := model.DefaultAvailableCopies
	if r.AvailableCopies != nil {
		copies = *r.AvailableCopies
	}
	return &model.LibraryItem{
		Title:           r.Title,
		Author:          r.Author,
		Genre:           r.Genre,
		PublishedYear:   r.PublishedYear,
		Description:     r.Description,
		AvailableCopies: copies,
	}
}

// swagger:model api.UpdateLibraryItemRequest
type UpdateLibraryItemRequest struct {
	Title           *string `json:"title" validate:"omitempty,min=1,max=255" example:"Clean Code"`
	Author          *string `json:"author" validate:"omitempty,min=1,max=255" example:"Robert C. Martin"`
	Genre           *string `json:"genre" validate:"omitempty,max=100" example:"Software"`
	PublishedYear   *int    `json:"published_year" example:"2008"`
	Description     *string `json:"description" example:"Second printing"`
	AvailableCopies *int    `json:"available_copies" validate:"omitempty,min=0" example:"2"`
}

// ToPatch 轉換為部分更新
func (r UpdateLibraryItemRequest) ToPatch() model.LibraryItemPatch {
	return model.LibraryItemPatch{
		Title:           r.Title,
		Author:          r.Author,
		Genre:           r.Genre,
		PublishedYear:   r.PublishedYear,
		Description:     r.Description,
		AvailableCopies: r.AvailableCopies,
	}
}

// ListLibraryItemsQuery 列表查詢參數
type ListLibraryItemsQuery struct {
	Author        string `query:"author"`
	Genre         string `query:"genre"`
	PublishedYear int    `query:"published_year"`
	Skip          int    `query:"skip"`
	Limit         int    `query:"limit"`
}

// ToFilter 轉換為查詢條件
func (q ListLibraryItemsQuery) ToFilter() model.LibraryItemFilter {
	return model.LibraryItemFilter{
		Author:        q.Author,
		Genre:         q.Genre,
		PublishedYear: q.PublishedYear,
		Skip:          q.Skip,
		Limit:         q.Limit,
	}
}
