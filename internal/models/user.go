package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "superadmin"
)

// Course is the academic program a student is enrolled in.
type Course string

const (
	CourseMCA  Course = "MCA"
	CourseMMS  Course = "MMS"
	CoursePGDM Course = "PGDM"
)

func (c Course) IsValid() bool {
	switch c {
	case CourseMCA, CourseMMS, CoursePGDM:
		return true
	}
	return false
}

type User struct {
	ID       string   `json:"id" gorm:"primaryKey;size:255"`
	FullName string   `json:"full_name" gorm:"not null;size:100"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role     UserRole `json:"role" gorm:"not null;size:20;index"`

	// Academic profile (students only)
	Course             *Course `json:"course" gorm:"size:10;index"`
	PGDMSpecialization *string `json:"pgdm_specialization" gorm:"size:100"`
	RollNumber         *string `json:"roll_number" gorm:"size:50"`

	IsActive    bool       `json:"is_active" gorm:"default:true"`
	LastLoginAt *time.Time `json:"last_login_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
