package domain

// US Letter in PDF points, used when a page carries no usable MediaBox.
const (
	DefaultPageWidth  = 612.0
	DefaultPageHeight = 792.0
)

type Page struct {
	Number int
	Text   string
	Width  float64
	Height float64
}

// ClampPage keeps a requested page inside [1, total]; total <= 0 means unknown.
func ClampPage(page, total int) int {
	if page < 1 {
		page = 1
	}
	if total > 0 && page > total {
		page = total
	}
	return page
}
