package models

// UserProfileRequest represents the request body for updating the caller's profile.
// Optional fields are pointers (or nil-able collections) so that fields left out
// of the payload are not written.
type UserProfileRequest struct {
	Name        string                 `json:"name" binding:"notblank"`
	City        *string                `json:"city,omitempty"`
	Attributes  map[string]interface{} `json:"attributes,omitempty"`
	Audiences   []string               `json:"audiences,omitempty"`
	ABTestGroup *string                `json:"abTestGroup,omitempty"`
}

// ToUpdate converts the request into a partial update. Name is always present.
func (r UserProfileRequest) ToUpdate() UserProfileUpdate {
	name := r.Name
	return UserProfileUpdate{
		Name:        &name,
		City:        r.City,
		Attributes:  r.Attributes,
		Audiences:   r.Audiences,
		ABTestGroup: r.ABTestGroup,
	}
}

// InterestRequest represents the request body for registering interest in a car.
type InterestRequest struct {
	CarID    string `json:"carId" binding:"notblank"`
	CarOwner string `json:"carOwner" binding:"notblank"`
}

// TestDriveRequest represents the request body for booking a test drive.
type TestDriveRequest struct {
	CarID         string         `json:"carId" binding:"notblank"`
	CarOwner      string         `json:"carOwner" binding:"notblank"`
	DealerID      string         `json:"dealerId" binding:"notblank"`
	PreferredDate *LocalDateTime `json:"preferredDate" binding:"required"`
}
