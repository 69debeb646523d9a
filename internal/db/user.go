package db

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User 定义了用户模型
type User struct {
	gorm.Model
	Username    string `gorm:"unique;not null"`
	Email       string `gorm:"unique;not null"`
	Password    string `gorm:"not null"`
	DisplayName string
	IsAdmin     bool `gorm:"default:false"`
}

// EnsureAdmin creates an admin account with a bcrypt-hashed password when the
// provided username and password are both non-empty and no such user exists.
func EnsureAdmin(gdb *gorm.DB, username, email, password string) error {
	trimmedUser := strings.TrimSpace(username)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedUser == "" || trimmedPassword == "" {
		return nil
	}
	if gdb == nil {
		return errors.New("database not initialized")
	}

	trimmedEmail := strings.TrimSpace(email)
	if trimmedEmail == "" {
		trimmedEmail = trimmedUser + "@localhost"
	}

	var existing User
	if err := gdb.Where("username = ?", trimmedUser).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		return gdb.Create(&User{
			Username: trimmedUser,
			Email:    trimmedEmail,
			Password: string(hashed),
			IsAdmin:  true,
		}).Error
	}

	if !existing.IsAdmin {
		return gdb.Model(&existing).Update("is_admin", true).Error
	}

	return nil
}
