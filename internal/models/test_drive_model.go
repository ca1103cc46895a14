package models

// TestDriveStatusRequested is the status of every newly created test drive.
const TestDriveStatusRequested = "requested"

// TestDrive is a user's request to test drive a car at a dealer.
type TestDrive struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	CarID         string        `json:"carId"`
	CarOwner      string        `json:"carOwner"`
	DealerID      string        `json:"dealerId"`
	PreferredDate LocalDateTime `json:"preferredDate"`
	Status        string        `json:"status"`
	CreatedAt     LocalDateTime `json:"createdAt"`
}
