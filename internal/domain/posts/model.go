package posts

import "time"

type Post struct {
	ID       string
	UserID   string
	UserName string // copiado del autor al crear

	YelpID    string
	VetName   string
	PostTitle string
	ImageURL  string
	Address   string
	Phone     string

	Toggles Toggles

	CreatedAt time.Time

	// Version se usa para compare-and-swap en Repository.Update.
	Version int64
}

func (p Post) Clone() Post {
	out := p
	out.Toggles = p.Toggles.Clone()
	return out
}

// Page es una ventana de posts ordenada por fecha descendente.
// Count es el total que cumple el filtro, sin paginar.
type Page struct {
	Posts []Post
	Count int
}
