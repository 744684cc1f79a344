package domain

type (
	Email    = string
	Password = string
	Username = string
	UserId   = string

	Badge   = string
	Badges  = []Badge
	Picture = string
)
