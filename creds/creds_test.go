package creds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNamesFirstMissingField(t *testing.T) {
	cases := []struct {
		creds Credentials
		want  string
	}{
		{Credentials{}, "access key"},
		{Credentials{AccessKey: "AK"}, "secret key"},
		{Credentials{AccessKey: "AK", SecretKey: "SK"}, "seller ID"},
	}
	for _, tc := range cases {
		err := tc.creds.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), tc.want)
	}
}

func TestValidateAuthTokenOptional(t *testing.T) {
	c := Credentials{AccessKey: "AK", SecretKey: "SK", SellerID: "SELLER"}
	assert.NoError(t, c.Validate())
	c.AuthToken = "amzn.mws.token"
	assert.NoError(t, c.Validate())
}
