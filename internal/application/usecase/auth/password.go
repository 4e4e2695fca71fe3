// Package auth contains authentication-related use cases.
package auth

import (
	"fmt"
	"unicode/utf8"

	domainerror "github.com/dompet/ledger/internal/domain/error"
)

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

// checkPassword rejects passwords too short to register or too long to hash.
func checkPassword(password string) error {
	var message string
	switch {
	case utf8.RuneCountInString(password) < minPasswordLength:
		message = fmt.Sprintf("password must be at least %d characters long", minPasswordLength)
	case len(password) > maxPasswordBytes:
		message = fmt.Sprintf("password must be at most %d bytes long", maxPasswordBytes)
	default:
		return nil
	}
	return domainerror.NewAuthError(domainerror.ErrCodeWeakPassword, message, domainerror.ErrWeakPassword)
}
