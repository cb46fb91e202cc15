package models

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserEmailNotUnique = errors.New("a user with this email address already exists")
	ErrUserEmailInvalid   = errors.New("the email address is not valid")
	ErrUserNameEmpty      = errors.New("the name must not be empty")
)

// User is an account identity. The credential is only ever stored
// as a bcrypt hash.
type User struct {
	DefaultModel
	Name       string     `gorm:"column:nome;not null"`
	Email      string     `gorm:"column:email;not null;uniqueIndex"`
	Credential string     `gorm:"column:senha;not null"`
	Role       string     `gorm:"column:cargo"`
	Active     bool       `gorm:"column:ativo;not null;default:true"`
	LastLogin  *time.Time `gorm:"column:ultimo_login"`
	Alerts     []Alert    `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}

func (User) TableName() string {
	return "usuarios"
}

func (User) Self() string {
	return "User"
}

// BeforeSave normalizes the email address and validates the user.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	if u.Name == "" {
		return ErrUserNameEmpty
	}

	if _, err := mail.ParseAddress(u.Email); err != nil {
		return ErrUserEmailInvalid
	}

	return nil
}

func (u *User) AfterFind(tx *gorm.DB) error {
	_ = u.DefaultModel.AfterFind(tx)
	u.LastLogin = utc(u.LastLogin)

	return nil
}

// SetCredential hashes the plain text credential and stores the hash.
func (u *User) SetCredential(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.Credential = string(hash)
	return nil
}

// CheckCredential reports if the plain text credential matches the stored hash.
func (u User) CheckCredential(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Credential), []byte(plain)) == nil
}
