package utils

import (
	"math"
	"net/url"
	"strconv"

	"github.com/yeremiapane/table-reservation/store"
)

const (
	DefaultPage   = 1
	DefaultLimit  = 10
	DefaultSortBy = "createdAt"
)

// QueryParams -> ambil nilai pertama dari setiap query parameter
func QueryParams(values url.Values) map[string]string {
	params := make(map[string]string, len(values))
	for key, v := range values {
		if len(v) > 0 {
			params[key] = v[0]
		}
	}
	return params
}

// BuildQueryFilters translates list query parameters into a store filter.
// Unknown and empty keys are ignored. A malformed date or number drops the whole filter (match all).
func BuildQueryFilters(params map[string]string) store.Filter {
	filter := store.Filter{}

	if raw := params["startDate"]; raw != "" {
		start, valid := ParseDate(raw)
		if !valid {
			ErrorLogger.Warnf("query filter ignored: invalid startDate %q", raw)
			return store.Filter{}
		}
		filter = append(filter, store.Condition{Field: "reservationTime", Op: store.OpGte, Value: start})
	}
	if raw := params["endDate"]; raw != "" {
		end, valid := ParseDate(raw)
		if !valid {
			ErrorLogger.Warnf("query filter ignored: invalid endDate %q", raw)
			return store.Filter{}
		}
		filter = append(filter, store.Condition{Field: "reservationTime", Op: store.OpLte, Value: end})
	}

	if status := params["status"]; status != "" {
		filter = append(filter, store.Condition{Field: "status", Op: store.OpEq, Value: status})
	}

	if raw, ok := params["isAvailable"]; ok {
		filter = append(filter, store.Condition{Field: "isAvailable", Op: store.OpEq, Value: raw == "true"})
	}

	if raw := params["minCapacity"]; raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			ErrorLogger.Warnf("query filter ignored: invalid minCapacity %q", raw)
			return store.Filter{}
		}
		filter = append(filter, store.Condition{Field: "capacity", Op: store.OpGte, Value: n})
	}

	if search := params["search"]; search != "" {
		filter = append(filter, store.Condition{Field: "customerName", Op: store.OpContainsFold, Value: search})
	}

	return filter
}

// Pagination is the resolved page window of a list request.
type Pagination struct {
	Page    int
	Limit   int
	Skip    int
	SortBy  string
	SortAsc bool
}

// GetPaginationOptions -> page/limit/sortBy/sortOrder dengan nilai default
func GetPaginationOptions(params map[string]string) Pagination {
	p := Pagination{
		Page:   positiveOr(params["page"], DefaultPage),
		Limit:  positiveOr(params["limit"], DefaultLimit),
		SortBy: DefaultSortBy,
	}
	// (page-1)*limit harus muat di int
	if maxPage := math.MaxInt/p.Limit + 1; p.Page > maxPage {
		p.Page = maxPage
	}
	if sortBy := params["sortBy"]; sortBy != "" {
		p.SortBy = sortBy
	}
	p.SortAsc = params["sortOrder"] == "asc"
	p.Skip = (p.Page - 1) * p.Limit
	return p
}

// FindOptions converts the window into store options.
func (p Pagination) FindOptions() store.FindOptions {
	return store.FindOptions{
		Skip:      int64(p.Skip),
		Limit:     int64(p.Limit),
		SortField: p.SortBy,
		SortAsc:   p.SortAsc,
	}
}

func (p Pagination) Meta(total int64) Meta {
	return Meta{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(p.Limit))),
	}
}

func positiveOr(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
