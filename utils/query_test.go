package utils

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/table-reservation/store"
)

func TestBuildQueryFiltersEmpty(t *testing.T) {
	InitLogger("error")
	assert.Empty(t, BuildQueryFilters(nil))
	assert.Empty(t, BuildQueryFilters(map[string]string{"unknown": "x", "page": "2"}))
}

func TestBuildQueryFiltersAllKeys(t *testing.T) {
	InitLogger("error")
	filter := BuildQueryFilters(map[string]string{
		"startDate":   "2024-05-01",
		"endDate":     "2024-05-31T23:59:59Z",
		"status":      "Confirmed",
		"isAvailable": "yes",
		"minCapacity": "4",
		"search":      "smi",
	})

	require.Len(t, filter, 6)
	assert.Equal(t, store.Condition{Field: "reservationTime", Op: store.OpGte, Value: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}, filter[0])
	assert.Equal(t, store.Condition{Field: "reservationTime", Op: store.OpLte, Value: time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC)}, filter[1])
	assert.Equal(t, store.Condition{Field: "status", Op: store.OpEq, Value: "Confirmed"}, filter[2])
	// selain "true" selalu false
	assert.Equal(t, store.Condition{Field: "isAvailable", Op: store.OpEq, Value: false}, filter[3])
	assert.Equal(t, store.Condition{Field: "capacity", Op: store.OpGte, Value: 4}, filter[4])
	assert.Equal(t, store.Condition{Field: "customerName", Op: store.OpContainsFold, Value: "smi"}, filter[5])
}

func TestBuildQueryFiltersOneSidedRange(t *testing.T) {
	InitLogger("error")
	filter := BuildQueryFilters(map[string]string{"endDate": "2024-06-01"})
	require.Len(t, filter, 1)
	assert.Equal(t, store.OpLte, filter[0].Op)
}

func TestBuildQueryFiltersMalformedFailsOpen(t *testing.T) {
	InitLogger("error")
	assert.Empty(t, BuildQueryFilters(map[string]string{"status": "Pending", "startDate": "yesterday"}))
	assert.Empty(t, BuildQueryFilters(map[string]string{"isAvailable": "true", "minCapacity": "four"}))
}

func TestBuildQueryFiltersEmptyValuesIgnored(t *testing.T) {
	InitLogger("error")
	filter := BuildQueryFilters(map[string]string{
		"startDate":   "",
		"endDate":     "",
		"minCapacity": "",
		"search":      "",
		"status":      "Confirmed",
	})
	assert.Equal(t, store.Filter{{Field: "status", Op: store.OpEq, Value: "Confirmed"}}, filter)

	assert.Empty(t, BuildQueryFilters(map[string]string{"status": ""}))
}

func TestQueryParamsFirstValueWins(t *testing.T) {
	params := QueryParams(url.Values{"page": {"2", "3"}, "status": {"Seated"}})
	assert.Equal(t, map[string]string{"page": "2", "status": "Seated"}, params)
}

func TestGetPaginationOptionsDefaults(t *testing.T) {
	p := GetPaginationOptions(map[string]string{})
	assert.Equal(t, Pagination{Page: 1, Limit: 10, Skip: 0, SortBy: "createdAt", SortAsc: false}, p)

	p = GetPaginationOptions(map[string]string{"page": "abc", "limit": "-5", "sortOrder": "ASC"})
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.False(t, p.SortAsc)
}

func TestGetPaginationOptions(t *testing.T) {
	p := GetPaginationOptions(map[string]string{"page": "3", "limit": "5", "sortBy": "tableNumber", "sortOrder": "asc"})
	assert.Equal(t, Pagination{Page: 3, Limit: 5, Skip: 10, SortBy: "tableNumber", SortAsc: true}, p)

	opts := p.FindOptions()
	assert.Equal(t, store.FindOptions{Skip: 10, Limit: 5, SortField: "tableNumber", SortAsc: true}, opts)

	large := GetPaginationOptions(map[string]string{"limit": "1000"})
	assert.Equal(t, 1000, large.Limit)
	assert.Equal(t, Meta{Page: 1, Limit: 1000, Total: 1500, Pages: 2}, large.Meta(1500))
}

func TestGetPaginationOptionsHugePage(t *testing.T) {
	p := GetPaginationOptions(map[string]string{"page": "999999999999999999", "limit": "10"})
	assert.Less(t, p.Page, 999999999999999999)
	assert.GreaterOrEqual(t, p.Skip, 0)
	assert.Equal(t, (p.Page-1)*p.Limit, p.Skip)
	assert.Positive(t, p.FindOptions().Skip)
}

func TestPaginationMeta(t *testing.T) {
	p := GetPaginationOptions(map[string]string{"page": "2", "limit": "5"})
	assert.Equal(t, Meta{Page: 2, Limit: 5, Total: 12, Pages: 3}, p.Meta(12))
	assert.Equal(t, Meta{Page: 2, Limit: 5, Total: 0, Pages: 0}, p.Meta(0))
	assert.Equal(t, 2, p.Meta(10).Pages)
}
