package models

import "time"

type Video struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	VideoURL    string    `db:"video_url" json:"video_url"`
	Limit       int64     `db:"view_limit" json:"limit"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
