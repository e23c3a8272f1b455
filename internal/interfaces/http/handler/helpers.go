package handler

func pageOrDefault(page int) int {
	if page == 0 {
		return 1
	}
	return page
}

func pageSizeOrDefault(pageSize int) int {
	if pageSize == 0 {
		return 20
	}
	return pageSize
}
