package authtests

import (
	"strings"

	"github.com/google/uuid"
)

// Random identities keep concurrent runs against a shared environment
// from colliding on usernames or addresses. The character set sticks to
// what the service's username validation allows.

func RandomUsername() string {
	return "test_user_" + randomChars(14)
}

func RandomEmail() string {
	return "test_user_" + randomChars(14) + "@test.nu"
}

func RandomPassword() string {
	return randomChars(30)
}

func randomChars(n int) string {
	s := strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	return s[:n]
}
