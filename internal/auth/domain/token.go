package domain

import "time"

type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}
