// File: internal/api/error_response.go
package api

// ErrorResponse 統一錯誤格式
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Code    string `json:"code" example:"NOT_FOUND"`
	Message string `json:"message" example:"resource not found"`
}

// DetailResponse 僅帶訊息的成功回應
// swagger:model api.DetailResponse
type DetailResponse struct {
	Detail string `json:"detail" example:"Item deleted successfully"`
}
