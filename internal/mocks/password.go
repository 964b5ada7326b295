package mocks

import "errors"

// MockPasswordHasher implements auth.PasswordHasher for testing
type MockPasswordHasher struct {
	// HashFn allows for custom hashing logic in tests
	HashFn func(password string) (string, error)

	// Err is returned by the default implementation when set
	Err error
}

// Hash implements the auth.PasswordHasher interface.
// The default implementation produces a recognizable fake hash.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return "hashed:" + password, nil
}

// MockPasswordVerifier implements auth.PasswordVerifier for testing
type MockPasswordVerifier struct {
	// ShouldSucceed determines whether the password comparison should succeed
	ShouldSucceed bool

	// CompareFn allows for custom comparison logic in tests
	CompareFn func(hashedPassword, password string) error

	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
}

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.CompareCallCount++

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}

	if m.ShouldSucceed {
		return nil
	}
	return errors.New("password mismatch")
}
