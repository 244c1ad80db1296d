package entity

import "time"

// User represents an account row in the `users` table. ArticleIDs is the
// owned-article set from `user_articles`; it is mutated only inside the
// article service's transactions, never directly.
type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Image        string    `db:"image" json:"image"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
	ArticleIDs   []string  `json:"articles"`
}

// PublicView is the projection returned by list/lookup endpoints: never the
// credential.
type PublicView struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Image      string   `json:"image"`
	ArticleIDs []string `json:"articles"`
}

func (u *User) Public() PublicView {
	ids := u.ArticleIDs
	if ids == nil {
		ids = []string{}
	}
	return PublicView{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.Image, ArticleIDs: ids}
}
