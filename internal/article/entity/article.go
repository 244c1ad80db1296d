package entity

import "time"

// Article is a published piece. Creator is set once at creation and never
// reassigned; only that user may edit or delete the article.
type Article struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Creator   string    `db:"creator" json:"creator"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}
