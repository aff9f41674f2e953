package entity

import (
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// User представляет пользователя системы (локальное представление провайдера идентичности)
type User struct {
	Model
	Username    string `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email       string `gorm:"size:254;not null;uniqueIndex" json:"email"`
	Password    string `gorm:"size:100;not null" json:"-"`
	FirstName   string `gorm:"size:150;not null;default:''" json:"first_name"`
	LastName    string `gorm:"size:150;not null;default:''" json:"last_name"`
	IsSuperuser bool   `gorm:"not null" json:"is_superuser"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// FullName возвращает имя и фамилию, либо username, если они не заполнены
func (u *User) FullName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full == "" {
		return u.Username
	}
	return full
}

func (u *User) String() string {
	return u.Username
}

// MaxPasswordLength - предел bcrypt: байты сверх 72 не учитываются
const MaxPasswordLength = 72

// SetPassword хеширует пароль и сохраняет хеш. Значение хешируется всегда,
// даже если оно похоже на bcrypt-хеш.
func (u *User) SetPassword(plain string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[User.SetPassword] Ошибка при хешировании пароля для username=%s: %v", u.Username, err)
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword проверяет, соответствует ли переданный пароль хешу
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
