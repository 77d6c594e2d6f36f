package models

import "time"

// Article is a blog article with up to two categories and an optional image.
type Article struct {
	ID         int64
	Title      string
	Content    string // markdown
	Author     string
	Image      string // server-side path of the stored image, "" when none
	ImageURL   string // public URL of Image
	Categories []Relation
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (a Article) RecordID() int64 { return a.ID }
