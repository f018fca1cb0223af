package catalog

// PageSize is the fixed number of tokens shown per page.
const PageSize = 10

// Page is one window into a filtered token list.
type Page struct {
	Number int // 1-based, already clamped
	Count  int // total pages, at least 1
	Items  []Token
}

// Paginate slices the filtered list into the requested page. The requested
// page is clamped to [1, pageCount]; an empty list yields a single empty
// page. Resetting the requested page to 1 when the filter changes is the
// caller's contract, not this function's.
func Paginate(filtered []Token, pageSize, requested int) Page {
	if pageSize < 1 {
		pageSize = PageSize
	}

	count := (len(filtered) + pageSize - 1) / pageSize
	if count < 1 {
		count = 1
	}

	page := requested
	if page < 1 {
		page = 1
	}
	if page > count {
		page = count
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Page{Number: page, Count: count, Items: filtered[start:end]}
}
