/*
Package randx provides functions for generating cryptographically secure random identifiers.

It is primarily used to generate fixed-length Base62 encoded note IDs and UUID
batch IDs for assignment runs.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the total number of characters in the Base62 character set (62).
	Base62Len = int64(len(Base62Chars))

	// NoteIDLength is the fixed length of a generated note ID.
	NoteIDLength = 8
)

// NoteID generates a Base62 encoded note ID using a cryptographically secure
// random number generator (crypto/rand).
// It returns a string of length NoteIDLength and any error encountered.
func NoteID() (string, error) {
	result := make([]byte, NoteIDLength)

	for i := range NoteIDLength {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for note ID: %v", err)
		}

		result[i] = Base62Chars[num.Int64()]
	}

	return string(result), nil
}

// BatchID generates a standard UUID v4 string to identify one assignment run in logs.
func BatchID() string {
	return uuid.New().String()
}

// IsValidNoteID checks if the given string is a valid note ID.
// Validity criteria include: length equals NoteIDLength and all characters belong
// to the Base62Chars set.
func IsValidNoteID(id string) bool {
	if len(id) != NoteIDLength {
		return false
	}

	for _, char := range id {
		if !strings.ContainsRune(Base62Chars, char) {
			return false
		}
	}

	return true
}
