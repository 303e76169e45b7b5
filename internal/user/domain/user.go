package domain

import "time"

type User struct {
	ID           int64
	Email        string
	Username     string
	ProfileImage *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileUpdate carries a partial profile change. Nil fields are left as
// they are.
type ProfileUpdate struct {
	Username     *string
	Email        *string
	ProfileImage *string
}

func (u ProfileUpdate) IsEmpty() bool {
	return u.Username == nil && u.Email == nil && u.ProfileImage == nil
}
