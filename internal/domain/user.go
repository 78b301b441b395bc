package domain

// SalaryRange is a user's default salary band preference.
type SalaryRange struct {
	Min int `json:"min" dynamodbav:"min"`
	Max int `json:"max" dynamodbav:"max"`
}

// UserPreferences hold defaults applied when a search request omits the
// equivalent parameter.
type UserPreferences struct {
	EmailNotifications bool         `json:"email_notifications" dynamodbav:"email_notifications"`
	DefaultLocation    string       `json:"default_location,omitempty" dynamodbav:"default_location,omitempty"`
	DefaultSalaryRange *SalaryRange `json:"default_salary_range,omitempty" dynamodbav:"default_salary_range,omitempty"`
}

// User identity comes from the external identity provider; UserID is the
// provider subject.
type User struct {
	UserID      string          `json:"user_id" dynamodbav:"user_id"`
	Email       string          `json:"email" dynamodbav:"email"`
	Preferences UserPreferences `json:"preferences" dynamodbav:"preferences"`
	CreatedAt   string          `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt   string          `json:"updated_at" dynamodbav:"updated_at"`
	LastLoginAt string          `json:"last_login_at,omitempty" dynamodbav:"last_login_at,omitempty"`
}
