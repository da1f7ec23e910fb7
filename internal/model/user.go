package model

import "time"

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

type User struct {
	BaseModel
	FirstName string    `gorm:"size:100;not null" json:"firstName"`
	LastName  string    `gorm:"size:100;not null" json:"lastName"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"size:20;default:'student'" json:"role"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// StudentProfile carries enrollment data for users with the student role.
// New registrations start unapproved and cannot log in until an admin
// approves them.
type StudentProfile struct {
	BaseModel
	UserID         uint       `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"userId"`
	User           *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	MiddleName     string     `gorm:"size:100" json:"middleName"`
	StudentNumber  string     `gorm:"size:20;uniqueIndex;not null" json:"studentNumber"`
	Section        string     `gorm:"size:50" json:"section"`
	Course         string     `gorm:"size:100" json:"course"`
	Birthday       *time.Time `json:"birthday,omitempty"`
	Phone          string     `gorm:"size:20" json:"phone"`
	IsApproved     bool       `gorm:"default:false" json:"isApproved"`
	DateRegistered time.Time  `json:"dateRegistered"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}
