// Package pagination 提供统一的分页请求 / 分页结果类型，
// 以及一个纯函数式的内存切片分页适配器。
//
// 适配器面向“查询返回完整内存集合”的场景；
// 存储层支持分页下推时（LIMIT/OFFSET），应优先在查询层分页，
// 两种路径产出的 Page 形状保持一致。
package pagination

// Request 分页请求，页号从 0 开始。
type Request struct {
	Number int `json:"number"`
	Size   int `json:"size"`
}

// Offset 返回请求对应的起始偏移量。
func (r Request) Offset() int { return r.Number * r.Size }

// Page 分页结果。
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// New 以已截取的内容与总数构造分页结果（供存储层分页下推使用）。
func New[T any](content []T, req Request, total int64) Page[T] {
	return Page[T]{
		Content:       content,
		Number:        req.Number,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages(total, req.Size),
	}
}

// FromSlice 对完整的有序切片做确定性开窗分页。
// 越界页号不报错，退化为内容为空、总数正确的页。
func FromSlice[T any](items []T, req Request) Page[T] {
	start := req.Offset()
	end := start + req.Size
	if end > len(items) {
		end = len(items)
	}

	content := []T{}
	if start <= len(items) && start < end {
		content = items[start:end]
	}
	return New(content, req, int64(len(items)))
}

func totalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return int(pages)
}
