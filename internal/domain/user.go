package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User validation errors.
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrNameTooShort        = errors.New("name must be at least 2 characters long")
	ErrNameTooLong         = errors.New("name must be at most 50 characters long")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered user of the application.
// It contains essential user information and authentication details.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during registration
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given name, email and password.
// It generates a new UUID for the user ID, normalizes the email to lower
// case, and sets the creation/update timestamps. Returns an error if
// validation fails.
//
// NOTE: This function only sets up the user structure with the plaintext
// password. The caller is responsible for hashing the password (see
// auth.PasswordHasher) before handing the user to a store; stores refuse
// users that still carry a plaintext password.
func NewUser(name, email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		Password:  password, // Plaintext; must be hashed before storage
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NormalizeEmail lower-cases and trims an email address so that uniqueness
// checks and lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	switch n := len(u.Name); {
	case n == 0:
		return ErrEmptyName
	case n < 2:
		return ErrNameTooShort
	case n > 50:
		return ErrNameTooLong
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	// During registration a plaintext password must be validated; existing
	// users loaded from the store carry only the hash.
	if u.Password != "" {
		switch n := len(u.Password); {
		case n < 6:
			return ErrPasswordTooShort
		case n > 72: // bcrypt's practical limit
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// validEmailFormat performs basic validation of email format: a single @
// with a non-empty local part and a dotted domain. Deliberately simple;
// deliverability is the mail system's problem, not ours.
func validEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	if strings.Contains(email[at+1:], "@") {
		return false
	}

	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
