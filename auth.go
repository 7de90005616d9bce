package main

import (
	"fmt"
	"strings"

	"quickbill/models"

	"golang.org/x/crypto/bcrypt"
)

// RegisterUser creates an account with a bcrypt-hashed password. The unique
// email index backstops the optimistic pre-check under concurrent signups.
func RegisterUser(firstName, lastName, companyName, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email required")
	}
	if firstName == "" {
		return nil, fmt.Errorf("first name required")
	}
	if len(password) < 6 { // basic password policy
		return nil, fmt.Errorf("password too short (min 6)")
	}
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("user already exists")
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{
		FirstName:      firstName,
		LastName:       lastName,
		CompanyName:    companyName,
		Email:          email,
		HashedPassword: hashedPassword,
	}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) { // race condition after initial check
			return nil, fmt.Errorf("user already exists")
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies an email/password pair. Lookup and hash failures are
// indistinguishable to the caller.
func Authenticate(email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("invalid email or password")
	}
	return user, nil
}
