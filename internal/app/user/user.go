/*
Package user defines the domain types for Secret-Santa participants: the user
record stored in DynamoDB, the creation payload, anonymous profile notes, and
the sparse update document applied to mutable profile fields.
*/
package user

import (
	"fmt"
	"strings"
	"unicode"
)

// Note is an anonymous message left on a user's profile by another user.
// Notes are created by append and removed by id; there is no update-in-place.
type Note struct {
	ID      string `json:"id" dynamodbav:"id"`
	Message string `json:"message" dynamodbav:"message"`
}

// Address is the structured mailing address of a user.
type Address struct {
	Line1 string `json:"line1" dynamodbav:"line1"`
	Line2 string `json:"line2,omitempty" dynamodbav:"line2,omitempty"`
	City  string `json:"city" dynamodbav:"city"`
	State string `json:"state" dynamodbav:"state"`
	Zip   string `json:"zip" dynamodbav:"zip"`
}

// NewUser is the payload accepted when registering a user.
// The username is unique and immutable once created.
type NewUser struct {
	Username  string  `json:"username" dynamodbav:"username"`
	FirstName string  `json:"firstName" dynamodbav:"firstName"`
	LastName  string  `json:"lastName" dynamodbav:"lastName"`
	Address   Address `json:"address" dynamodbav:"address"`
}

// User is the full stored record. AssignedUser is the Secret-Santa recipient
// pointer; empty until an administrator runs an assignment.
type User struct {
	NewUser
	Notes        []Note `json:"notes" dynamodbav:"notes"`
	AssignedUser string `json:"assignedUser" dynamodbav:"assignedUser,omitempty"`
}

// Validate checks the creation payload and returns one message per violation.
// All violations are collected so the caller can report them together.
func (u NewUser) Validate() []string {
	var invalid []string

	if u.Username == "" || strings.ContainsFunc(u.Username, unicode.IsSpace) {
		invalid = append(invalid, "username is empty or contains spaces")
	}
	if u.FirstName == "" {
		invalid = append(invalid, "firstName is empty")
	}
	if u.LastName == "" {
		invalid = append(invalid, "lastName is empty")
	}

	addressFields := []struct {
		name  string
		value string
	}{
		{"line1", u.Address.Line1},
		{"city", u.Address.City},
		{"state", u.Address.State},
		{"zip", u.Address.Zip},
	}
	for _, field := range addressFields {
		if field.value == "" {
			invalid = append(invalid, fmt.Sprintf("%s is empty", field.name))
		}
	}

	return invalid
}

// AddressUpdate is the sparse counterpart of Address. A nil field means
// "do not change"; an explicit empty string is a real value and is applied.
type AddressUpdate struct {
	Line1 *string `json:"line1"`
	Line2 *string `json:"line2"`
	City  *string `json:"city"`
	State *string `json:"state"`
	Zip   *string `json:"zip"`
}

// Update is a sparse, partial view of a user's mutable fields.
// The username, notes, and assignment pointer are never updatable this way.
type Update struct {
	FirstName *string        `json:"firstName"`
	LastName  *string        `json:"lastName"`
	Address   *AddressUpdate `json:"address"`
}

// Document converts the update into a nested document holding only the fields
// that were actually supplied. Subtrees whose leaves are all absent are
// stripped entirely, so an untouched address produces no "address" key.
func (u Update) Document() map[string]any {
	doc := map[string]any{}

	if u.FirstName != nil {
		doc["firstName"] = *u.FirstName
	}
	if u.LastName != nil {
		doc["lastName"] = *u.LastName
	}

	if u.Address != nil {
		address := map[string]any{}
		if u.Address.Line1 != nil {
			address["line1"] = *u.Address.Line1
		}
		if u.Address.Line2 != nil {
			address["line2"] = *u.Address.Line2
		}
		if u.Address.City != nil {
			address["city"] = *u.Address.City
		}
		if u.Address.State != nil {
			address["state"] = *u.Address.State
		}
		if u.Address.Zip != nil {
			address["zip"] = *u.Address.Zip
		}
		if len(address) > 0 {
			doc["address"] = address
		}
	}

	return doc
}
