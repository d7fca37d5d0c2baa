package models

// Theme 是用户界面主题。
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// User 代表系统中的用户。
type User struct {
	BaseModel
	Email           string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name            string   `gorm:"type:varchar(100);not null;index" json:"name"`
	PasswordHash    string   `gorm:"type:varchar(255);not null" json:"-"` // 不暴露密码哈希
	Age             int      `json:"age"`
	Height          string   `gorm:"type:varchar(20)" json:"height"`
	Weight          float64  `json:"weight"`
	ExperienceLevel string   `gorm:"type:varchar(50)" json:"experienceLevel"`
	WorkoutVolume   string   `gorm:"type:varchar(10)" json:"workoutVolume"`
	Goals           []string `gorm:"serializer:json" json:"goals"`
	Equipment       string   `gorm:"type:varchar(100)" json:"equipment"`
	ProfileImageURL *string  `gorm:"type:varchar(255)" json:"profile_image_url"`
	FriendCode      *string  `gorm:"type:varchar(16);uniqueIndex" json:"friend_code"`
	Theme           Theme    `gorm:"type:varchar(10);default:'light'" json:"theme"`
}

// UserBasicInfo holds minimal public information about a user.
// Used when joining relationship rows with user identity.
type UserBasicInfo struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	FriendCode      *string `json:"friend_code"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
}

// TableName 指定 User 模型的表名。
func (User) TableName() string {
	return "users"
}

// FriendCodeValue 返回好友码，未分配时为空字符串。
func (u *User) FriendCodeValue() string {
	if u.FriendCode == nil {
		return ""
	}
	return *u.FriendCode
}
