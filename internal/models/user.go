package models

import "time"

// User is a cost owner. ID is the external numeric-string id clients use.
type User struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Birthday      time.Time `json:"birthday"`
	MaritalStatus string    `json:"maritalStatus"`
}
