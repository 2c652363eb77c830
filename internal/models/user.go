package models

import "time"

type User struct {
	ID        int64     `json:"id" redis:"id"`
	Username  string    `json:"username" redis:"username"`
	CreatedAt time.Time `json:"created_at" redis:"created_at"`
}
