package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestResolvePaging(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", query: "", wantPage: 1, wantLimit: 20, wantOffset: 0},
		{name: "explicit page and per_page", query: "?page=3&per_page=10", wantPage: 3, wantLimit: 10, wantOffset: 20},
		{name: "limit alias", query: "?limit=5", wantPage: 1, wantLimit: 5, wantOffset: 0},
		{name: "per_page wins over limit", query: "?per_page=10&limit=50", wantPage: 1, wantLimit: 10, wantOffset: 0},
		{name: "capped at max", query: "?per_page=5000", wantPage: 1, wantLimit: 100, wantOffset: 0},
		{name: "garbage falls back", query: "?page=abc&per_page=-1", wantPage: 1, wantLimit: 20, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			var got Paging
			app.Get("/", func(c *fiber.Ctx) error {
				got = ResolvePaging(c, 20, 100)
				return c.SendStatus(fiber.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil))
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()

			if got.Page != tt.wantPage || got.Limit != tt.wantLimit || got.Offset != tt.wantOffset {
				t.Errorf("got page=%d limit=%d offset=%d, want page=%d limit=%d offset=%d",
					got.Page, got.Limit, got.Offset, tt.wantPage, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestBuildPaginationFromPage(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		page    int
		perPage int
		want    Pagination
	}{
		{
			name: "middle page", total: 45, page: 2, perPage: 20,
			want: Pagination{Page: 2, PerPage: 20, Total: 45, TotalPages: 3, HasNext: true, HasPrev: true},
		},
		{
			name: "last page", total: 45, page: 3, perPage: 20,
			want: Pagination{Page: 3, PerPage: 20, Total: 45, TotalPages: 3, HasNext: false, HasPrev: true},
		},
		{
			name: "empty result still one page", total: 0, page: 1, perPage: 20,
			want: Pagination{Page: 1, PerPage: 20, Total: 0, TotalPages: 1, HasNext: false, HasPrev: false},
		},
		{
			name: "zero per page falls back", total: 10, page: 0, perPage: 0,
			want: Pagination{Page: 1, PerPage: 20, Total: 10, TotalPages: 1, HasNext: false, HasPrev: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildPaginationFromPage(tt.total, tt.page, tt.perPage); got != tt.want {
				t.Errorf("BuildPaginationFromPage() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
