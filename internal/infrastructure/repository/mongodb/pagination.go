package mongodb

// pageSkip converts page/limit query values into a Find skip offset. Page
// numbers are 1-based.
func pageSkip(page, limit int) int64 {
	if page < 1 {
		page = 1
	}
	return int64(page-1) * pageLimit(limit)
}

// pageLimit clamps the requested page size, defaulting to 10.
func pageLimit(limit int) int64 {
	if limit < 1 {
		return 10
	}
	if limit > 100 {
		return 100
	}
	return int64(limit)
}
