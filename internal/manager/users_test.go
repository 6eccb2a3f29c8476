package manager

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/watchstore/internal/model"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"ada@example.com", true},
		{"first.last@sub.example.co", true},
		{"", false},
		{"no-at-sign", false},
		{"two@@example.com", false},
		{"spaces in@example.com", false},
		{"missing@tld", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.ok, ValidateEmail(tt.email).Success)
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		ok    bool
	}{
		{"+41 22 555 01 23", true},
		{"0225550123", true},
		{"(022) 555-0123", true},
		{"12345", false},
		{"call me", false},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.ok, ValidatePhone(tt.phone).Success)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		ok       bool
	}{
		{"valid", "sekrit42word", true},
		{"too short", "ab1", false},
		{"no digit", "onlyletters", false},
		{"no letter", "1234567890", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, ValidatePassword(tt.password).Success)
		})
	}
}

func TestManager_RegisterUser(t *testing.T) {
	m := newTestManager(t)

	in := RegisterInput{
		Email:           "Ada@Example.com",
		Password:        "sekrit42word",
		ConfirmPassword: "sekrit42word",
		FirstName:       "Ada",
	}

	user, res, err := m.RegisterUser(in)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "ada@example.com", user["email"], "emails are lowercased")
	assert.NotEqual(t, "sekrit42word", user["password_hash"], "passwords are never stored plain")
	assert.True(t, strings.HasPrefix(user.String("password_hash"), "$2a$"))
	assert.Equal(t, false, user["email_verified"])

	t.Run("duplicate email is a validation failure", func(t *testing.T) {
		_, res, err := m.RegisterUser(in)
		require.NoError(t, err)
		assert.False(t, res.Success)
	})

	t.Run("mismatched confirmation", func(t *testing.T) {
		bad := in
		bad.Email = "other@example.com"
		bad.ConfirmPassword = "different42"
		_, res, err := m.RegisterUser(bad)
		require.NoError(t, err)
		assert.False(t, res.Success)
	})

	t.Run("weak password", func(t *testing.T) {
		bad := in
		bad.Email = "other@example.com"
		bad.Password, bad.ConfirmPassword = "short", "short"
		_, res, err := m.RegisterUser(bad)
		require.NoError(t, err)
		assert.False(t, res.Success)
	})
}

func TestManager_AuthenticateUser(t *testing.T) {
	m := newTestManager(t)

	_, res, err := m.RegisterUser(RegisterInput{
		Email:           "ada@example.com",
		Password:        "sekrit42word",
		ConfirmPassword: "sekrit42word",
	})
	require.NoError(t, err)
	require.True(t, res.Success)

	t.Run("good credentials", func(t *testing.T) {
		user, res, err := m.AuthenticateUser("ada@example.com", "sekrit42word")
		require.NoError(t, err)
		require.True(t, res.Success)
		assert.Equal(t, "ada@example.com", user["email"])
	})

	t.Run("wrong password", func(t *testing.T) {
		_, res, err := m.AuthenticateUser("ada@example.com", "wrong42word")
		require.NoError(t, err)
		assert.False(t, res.Success)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, res, err := m.AuthenticateUser("nobody@example.com", "sekrit42word")
		require.NoError(t, err)
		assert.False(t, res.Success)
	})

	t.Run("inactive account", func(t *testing.T) {
		user, _, err := m.UserByEmail("ada@example.com")
		require.NoError(t, err)
		_, err = m.UpdateByID("users", user.ID(), model.Record{"status": "suspended"})
		require.NoError(t, err)

		_, res, err := m.AuthenticateUser("ada@example.com", "sekrit42word")
		require.NoError(t, err)
		assert.False(t, res.Success)
	})
}

func TestManager_VerifyUserEmail(t *testing.T) {
	m := newTestManager(t)

	user, err := m.CreateUser(model.Record{"email": "ada@example.com"})
	require.NoError(t, err)
	require.Equal(t, false, user["email_verified"])

	require.NoError(t, m.VerifyUserEmail(user.ID()))
	got, ok, err := m.FindByID("users", user.ID())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, true, got["email_verified"])

	t.Run("absent user is not an error", func(t *testing.T) {
		assert.NoError(t, m.VerifyUserEmail("missing"))
	})
}
