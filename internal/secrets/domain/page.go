package domain

// Page is one page of a sharer's secrets, newest first.
type Page struct {
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
	Items      []*Secret
}
