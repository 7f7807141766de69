package response

import (
	"github.com/gin-gonic/gin"
)

type PaginationMeta struct {
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	// Pages lists the page buttons to render; 0 marks an ellipsis.
	Pages []int `json:"pages,omitempty"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		// ceil(total / limit) without overflowing on huge limits
		totalPages = int(total / int64(limit))
		if total%int64(limit) != 0 {
			totalPages++
		}
	}

	return PaginationMeta{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   limit,
		Pages:      PageNumbers(page, totalPages),
	}
}

// PageNumbers returns the page buttons for a pager: every page when there are
// at most five, otherwise the first and last page around a window of the
// current one. Zero stands for an ellipsis.
func PageNumbers(current, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}
	if totalPages <= 5 {
		pages := make([]int, 0, totalPages)
		for i := 1; i <= totalPages; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	pages := []int{1}
	switch {
	case current <= 3:
		pages = append(pages, 2, 3, 4, 5, 0, totalPages)
	case current >= totalPages-2:
		pages = append(pages, 0, totalPages-3, totalPages-2, totalPages-1, totalPages)
	default:
		pages = append(pages, 0, current-1, current, current+1, 0, totalPages)
	}
	return pages
}

type ApiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  any             `json:"data,omitempty"`
	Meta  *PaginationMeta `json:"meta,omitempty"`
	Error any             `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data interface{}, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{
		Ok:    true,
		Data:  data,
		Meta:  meta,
		Error: nil,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	c.JSON(status, ApiEnvelope{
		Ok:   false,
		Data: nil,
		Meta: nil,
		Error: map[string]interface{}{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}

// Abort writes the error envelope and stops the handler chain.
func Abort(c *gin.Context, status int, errorCode string, message string) {
	Error(c, status, errorCode, message, nil)
	c.Abort()
}
