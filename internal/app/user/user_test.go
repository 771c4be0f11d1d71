package user

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validNewUser() NewUser {
	return NewUser{
		Username:  "ann",
		FirstName: "Ann",
		LastName:  "Lee",
		Address: Address{
			Line1: "1 Rd",
			City:  "X",
			State: "Y",
			Zip:   "12345",
		},
	}
}

func TestValidateAcceptsCompletePayload(t *testing.T) {
	assert.Empty(t, validNewUser().Validate())
}

func TestValidateCollectsAllViolations(t *testing.T) {
	invalid := NewUser{}.Validate()

	assert.ElementsMatch(t, []string{
		"username is empty or contains spaces",
		"firstName is empty",
		"lastName is empty",
		"line1 is empty",
		"city is empty",
		"state is empty",
		"zip is empty",
	}, invalid)
}

func TestValidateRejectsWhitespaceUsername(t *testing.T) {
	u := validNewUser()
	u.Username = "an n"

	assert.Contains(t, u.Validate(), "username is empty or contains spaces")
}

func TestValidateAllowsMissingLine2(t *testing.T) {
	u := validNewUser()
	u.Address.Line2 = ""

	assert.Empty(t, u.Validate())
}

func TestUpdateDocumentDistinguishesAbsentFromEmpty(t *testing.T) {
	var update Update
	// An explicit empty string is a real value; an absent field is skipped.
	require.NoError(t, json.Unmarshal([]byte(`{"firstName": "", "address": {"zip": "99999"}}`), &update))

	doc := update.Document()
	assert.Equal(t, map[string]any{
		"firstName": "",
		"address":   map[string]any{"zip": "99999"},
	}, doc)
}

func TestUpdateDocumentStripsAllAbsentSubtree(t *testing.T) {
	var update Update
	require.NoError(t, json.Unmarshal([]byte(`{"firstName": "X", "address": {}}`), &update))

	doc := update.Document()
	assert.Equal(t, map[string]any{"firstName": "X"}, doc)
	assert.NotContains(t, doc, "address")
}

func TestUpdateDocumentEmptyUpdate(t *testing.T) {
	var update Update
	require.NoError(t, json.Unmarshal([]byte(`{}`), &update))

	assert.Empty(t, update.Document())
}
