package models

// Book is the transport-facing representation of a stored book.
// ID is assigned by the store and ignored on create.
type Book struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
	PublishedDate Date   `json:"publishedDate"`
}

// BookPatch carries a partial update. A nil pointer (or an unset date)
// means "leave the stored value alone".
type BookPatch struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	ISBN          *string `json:"isbn"`
	PublishedDate Date    `json:"publishedDate"`
}

// IsEmpty reports whether the patch would change nothing.
func (p BookPatch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.ISBN == nil && !p.PublishedDate.Valid()
}
