package project

import "time"

// Project is one stored karaoke job.
type Project struct {
	ID        string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
