package models

// UserProfile represents the profile of an authenticated user.
// UID is the Firebase Auth UID and doubles as the Firestore document ID.
type UserProfile struct {
	UID         string                 `json:"uid"`
	Email       string                 `json:"email,omitempty"`
	Name        string                 `json:"name"`
	City        string                 `json:"city"`
	Attributes  map[string]interface{} `json:"attributes"`
	Audiences   []string               `json:"audiences"`
	ABTestGroup *string                `json:"abTestGroup,omitempty"`
	CreatedAt   LocalDateTime          `json:"createdAt"`
	UpdatedAt   LocalDateTime          `json:"updatedAt"`
}

// UserProfileFields is the full set of writable profile fields used when a
// profile document is (over)written.
type UserProfileFields struct {
	Name        string
	City        string
	Attributes  map[string]interface{}
	Audiences   []string
	ABTestGroup *string
}

// DefaultUserProfileFields returns the fields of a freshly created profile.
func DefaultUserProfileFields() UserProfileFields {
	return UserProfileFields{
		Name:       "",
		City:       "",
		Attributes: map[string]interface{}{},
		Audiences:  []string{},
	}
}

// UserProfileUpdate is a partial profile update. A nil field is absent and
// leaves the stored value untouched.
type UserProfileUpdate struct {
	Name        *string
	City        *string
	Attributes  map[string]interface{}
	Audiences   []string
	ABTestGroup *string
}

// IsEmpty reports whether the update carries no field at all.
func (u UserProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.City == nil && u.Attributes == nil && u.Audiences == nil && u.ABTestGroup == nil
}
