package domain

import "time"

// User is the account document as the API returns it. PassHash never leaves
// the server, so it is not part of the wire shape.
type User struct {
	Id             UserId    `json:"_id" validate:"required"`
	Username       Username  `json:"username" validate:"required"`
	Email          Email     `json:"email,omitempty"`
	ProfilePicture Picture   `json:"profilePicture,omitempty"`
	Stats          Stats     `json:"stats"`
	Badges         Badges    `json:"badges"`
	Settings       Settings  `json:"settings"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// PublicUser is what search and lookup by id expose about other accounts.
type PublicUser struct {
	Id             UserId   `json:"_id" validate:"required"`
	Username       Username `json:"username" validate:"required"`
	ProfilePicture Picture  `json:"profilePicture,omitempty"`
	Stats          Stats    `json:"stats"`
	Badges         Badges   `json:"badges"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		Id:             u.Id,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
		Stats:          u.Stats,
		Badges:         u.Badges,
	}
}
