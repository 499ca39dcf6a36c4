package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"stagedesk/internal/shared/constants"
)

func newQueryContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"valid values pass through", 2, 25, 2, 25},
		{"zero page defaults", 0, 25, constants.DefaultPage, 25},
		{"negative page defaults", -3, 25, constants.DefaultPage, 25},
		{"zero page size defaults", 2, 0, 2, constants.DefaultPageSize},
		{"oversized page size is capped", 1, constants.MaxPageSize + 50, 1, constants.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePagination(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPageSize, got.PageSize)
		})
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"page and page_size", "page=3&page_size=10", 3, 10},
		{"no params use defaults", "", constants.DefaultPage, constants.DefaultPageSize},
		{"limit alias", "limit=10", constants.DefaultPage, 10},
		{"offset alias derives page", "offset=20&limit=10", 3, 10},
		{"garbage falls back to defaults", "page=abc&page_size=-1", constants.DefaultPage, constants.DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePagination(newQueryContext(tt.query))
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPageSize, got.PageSize)
		})
	}
}

func TestPagination_Offset(t *testing.T) {
	assert.Equal(t, 0, Pagination{Page: 1, PageSize: 20}.Offset())
	assert.Equal(t, 40, Pagination{Page: 3, PageSize: 20}.Offset())
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		pageSize int
		want     int
	}{
		{"exact fit", 40, 20, 2},
		{"remainder rounds up", 41, 20, 3},
		{"empty result is one page", 0, 20, 1},
		{"zero page size is one page", 40, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.total, tt.pageSize))
		})
	}
}
