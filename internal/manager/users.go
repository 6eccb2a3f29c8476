package manager

import (
	"strings"

	"github.com/user/watchstore/internal/model"
)

// CreateUser inserts a user with domain defaults: email_verified=false,
// status=active. The caller is responsible for any uniqueness
// pre-checks (RegisterUser does them).
func (m *Manager) CreateUser(data model.Record) (model.Record, error) {
	rec := data.Clone()
	if _, ok := rec["email_verified"]; !ok {
		rec["email_verified"] = false
	}
	if _, ok := rec["status"]; !ok {
		rec["status"] = "active"
	}
	return m.store.Insert(model.TableUsers, rec)
}

// UserByEmail finds a user by exact email (case-insensitive).
func (m *Manager) UserByEmail(email string) (model.Record, bool, error) {
	return m.store.FindOne(model.TableUsers, []model.Condition{
		model.Eq("email", strings.ToLower(email)),
	})
}

// RegisterInput is the user-facing registration payload.
type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	Phone           string
}

// RegisterUser validates the input and creates the user. Validation
// failures come back as a Result, never as an error; errors are
// reserved for store failures.
func (m *Manager) RegisterUser(in RegisterInput) (model.Record, *Result, error) {
	if res := ValidateEmail(in.Email); !res.Success {
		return nil, res, nil
	}
	if res := ValidatePassword(in.Password); !res.Success {
		return nil, res, nil
	}
	if in.Password != in.ConfirmPassword {
		return nil, Failure("passwords do not match"), nil
	}
	if in.Phone != "" {
		if res := ValidatePhone(in.Phone); !res.Success {
			return nil, res, nil
		}
	}

	email := strings.ToLower(in.Email)
	if _, exists, err := m.UserByEmail(email); err != nil {
		return nil, nil, err
	} else if exists {
		return nil, Failure("an account with this email already exists"), nil
	}

	rec, err := m.CreateUser(model.Record{
		"email":         email,
		"password_hash": hashPassword(in.Password),
		"first_name":    in.FirstName,
		"last_name":     in.LastName,
		"phone":         in.Phone,
	})
	if err != nil {
		return nil, nil, err
	}
	return rec, OK(), nil
}

// AuthenticateUser checks credentials against the stored hash.
// Bad credentials come back as a failure Result, never an error.
func (m *Manager) AuthenticateUser(email, password string) (model.Record, *Result, error) {
	user, ok, err := m.UserByEmail(email)
	if err != nil {
		return nil, nil, err
	}
	if !ok || !checkPassword(user.String("password_hash"), password) {
		return nil, Failure("invalid email or password"), nil
	}
	if user.String("status") != "active" {
		return nil, Failure("account is not active"), nil
	}
	return user, OK(), nil
}

// VerifyUserEmail marks a user's email as verified. Updating an absent
// user changes nothing and is not an error.
func (m *Manager) VerifyUserEmail(id string) error {
	_, err := m.store.UpdateByID(model.TableUsers, id, model.Record{"email_verified": true})
	return err
}
