package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Username string `json:"username" validate:"required,min=2,max=32,username"`
	Hits     []int  `json:"hits" validate:"max=3"`
	Tier     int    `json:"tier" validate:"min=1,max=5"`
	Internal string `json:"-" validate:"max=1"`
}

func TestValidateRequest_Username(t *testing.T) {
	valid := []string{"hunter", "hunter_yen-2", "獵人阿彥", "ab", strings.Repeat("a", 32)}
	invalid := []string{"a", strings.Repeat("a", 33), "", "hunter yen", "hunter\x00", "hunter!"}

	for _, name := range valid {
		assert.NoError(t, validateRequest(sampleRequest{Username: name, Tier: 1}), "username %q", name)
	}
	for _, name := range invalid {
		assert.Error(t, validateRequest(sampleRequest{Username: name, Tier: 1}), "username %q", name)
	}
}

func TestValidationFields(t *testing.T) {
	t.Run("uses json names", func(t *testing.T) {
		err := validateRequest(sampleRequest{Username: "bad name", Hits: []int{1, 2, 3, 4}, Tier: 9})
		require.Error(t, err)

		fields := validationFields(err)
		assert.Equal(t, "may only contain letters, digits, '_' and '-'", fields["username"])
		assert.Equal(t, "must have at most 3 entries", fields["hits"])
		assert.Equal(t, "must be at most 5", fields["tier"])
	})

	t.Run("string bounds", func(t *testing.T) {
		fields := validationFields(validateRequest(sampleRequest{Username: "a", Tier: 0}))
		assert.Equal(t, "must have at least 2 characters", fields["username"])
		assert.Equal(t, "must be at least 1", fields["tier"])
	})

	t.Run("required", func(t *testing.T) {
		fields := validationFields(validateRequest(sampleRequest{Tier: 1}))
		assert.Equal(t, "is required", fields["username"])
		assert.Len(t, fields, 1)
	})

	t.Run("other errors", func(t *testing.T) {
		assert.Equal(t, map[string]string{"error": ErrMsgInvalidRequest}, validationFields(assert.AnError))
		assert.Nil(t, validationFields(nil))
	})
}
