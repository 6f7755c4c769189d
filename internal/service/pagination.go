package service

const DefaultPageSize = 4

// Допустимые размеры страницы списка объявлений
var allowedPageSizes = map[int]bool{4: true, 5: true, 10: true, 20: true}

// NormalizePageSize возвращает size, если он разрешен, иначе DefaultPageSize
func NormalizePageSize(size int) int {
	if allowedPageSizes[size] {
		return size
	}
	return DefaultPageSize
}

type pageBounds struct {
	page       int
	totalPages int
	offset     int
}

// paginate приводит номер страницы в диапазон [1, totalPages].
// Пустой список считается одной пустой страницей.
func paginate(page, size, total int) pageBounds {
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return pageBounds{
		page:       page,
		totalPages: totalPages,
		offset:     (page - 1) * size,
	}
}
