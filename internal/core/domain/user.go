package domain

// User is a registered account that owns todos. Password is stored and
// returned exactly as received; there is no hashing layer in this service.
type User struct {
	ID       int64
	Username string `validate:"max=255"`
	FullName string `validate:"max=255"`
	Email    string `validate:"max=255"`
	Password string `validate:"max=255"`
}
