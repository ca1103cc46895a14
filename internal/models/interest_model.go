package models

// Interest records that a user is interested in a car.
type Interest struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	CarID     string        `json:"carId"`
	CarOwner  string        `json:"carOwner"`
	CreatedAt LocalDateTime `json:"createdAt"`
}
