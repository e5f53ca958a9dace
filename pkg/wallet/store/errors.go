package store

import (
	"errors"

	"keyguardian/wallet/pkg/wallet"
)

func isNotFound(err error) bool {
	return errors.Is(err, wallet.ErrNotFound) || errors.Is(err, wallet.ErrCategoryNotFound)
}

func isValidation(err error) bool {
	return errors.Is(err, wallet.ErrValidation)
}

func isInvalidCiphertext(err error) bool {
	return errors.Is(err, wallet.ErrInvalidCiphertext)
}
