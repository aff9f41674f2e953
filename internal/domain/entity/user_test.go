package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUser_SetPassword(t *testing.T) {
	plainPassword := "top_secret"
	user := &User{Username: "bob", Email: "bob@example.com"}

	require.NoError(t, user.SetPassword(plainPassword))

	assert.NotEqual(t, plainPassword, user.Password, "Пароль должен быть изменён после хеширования")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(plainPassword)))
}

func TestUser_SetPassword_HashesBcryptLookingValue(t *testing.T) {
	looksHashed := "$2b$10$notreallyahashvalue..."
	user := &User{Username: "bob"}

	require.NoError(t, user.SetPassword(looksHashed))

	assert.NotEqual(t, looksHashed, user.Password)
	assert.True(t, user.CheckPassword(looksHashed))
}

func TestUser_CheckPassword(t *testing.T) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("top_secret"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &User{Username: "bob", Password: string(hashedPassword)}

	assert.True(t, user.CheckPassword("top_secret"))
	assert.False(t, user.CheckPassword("wrong"))
	assert.False(t, user.CheckPassword(""))
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "Bob Smith", (&User{Username: "bob", FirstName: "Bob", LastName: "Smith"}).FullName())
	assert.Equal(t, "bob", (&User{Username: "bob"}).FullName(), "Без имени используется username")
}
