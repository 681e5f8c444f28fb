package db

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/focustache/focustache/internal/models"
)

// RegisterUser creates a new user account. Registration is restricted to
// the configured email domains.
func RegisterUser(gdb *gorm.DB, email, name string, allowedDomains []string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := models.ValidateEmailDomain(email, allowedDomains); err != nil {
		return nil, err
	}

	var existing models.User
	if err := gdb.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("email %s is already registered", email)
	}

	user := models.User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  strings.TrimSpace(name),
	}

	if err := gdb.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// LocalUserEmail identifies the implicit account used by the CLI, which
// skips domain-restricted registration.
const LocalUserEmail = "local@focustache"

// GetOrCreateLocalUser returns the CLI's implicit local account.
func GetOrCreateLocalUser(gdb *gorm.DB) (*models.User, error) {
	var user models.User
	if err := gdb.Where("email = ?", LocalUserEmail).First(&user).Error; err == nil {
		return &user, nil
	}

	user = models.User{
		ID:    uuid.NewString(),
		Email: LocalUserEmail,
		Name:  "local",
	}
	if err := gdb.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID retrieves a user by their uuid
func GetUserByID(gdb *gorm.DB, id string) (*models.User, error) {
	var user models.User

	if err := gdb.First(&user, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("user %s not found", id)
	}

	return &user, nil
}
