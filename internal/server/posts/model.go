package posts

import "time"

// Post is a short text update linked to its author. The author reference is
// weak: it must resolve at creation time, deletions afterwards are out of
// scope. Posts are immutable once created.
type Post struct {
	ID         string    `json:"_id"`
	AuthorID   string    `json:"author"`
	AuthorName string    `json:"authorName,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}
