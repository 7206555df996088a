package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gnwofoke/portfolio-api/internal/errors"
)

func TestCreateMessageRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := CreateMessageRequest{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Subject: "Hello",
		Body:    "I enjoyed your latest post.",
	}
	require.NoError(t, valid.Validate())

	// Subject is optional.
	noSubject := valid
	noSubject.Subject = ""
	assert.NoError(t, noSubject.Validate())
}

func TestCreateMessageRequest_Validate_Failures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		req   CreateMessageRequest
		field string
	}{
		{"missing name", CreateMessageRequest{Email: "a@b.co", Body: "hi"}, "name"},
		{"missing email", CreateMessageRequest{Name: "A", Body: "hi"}, "email"},
		{"bad email", CreateMessageRequest{Name: "A", Email: "not-an-address", Body: "hi"}, "email"},
		{"missing body", CreateMessageRequest{Name: "A", Email: "a@b.co"}, "body"},
		{"blank body", CreateMessageRequest{Name: "A", Email: "a@b.co", Body: "  "}, "body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.req.Validate()
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, tc.field, apperrors.GetField(err))
		})
	}
}
