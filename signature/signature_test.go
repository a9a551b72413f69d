package signature

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalQuerySortsKeys(t *testing.T) {
	got := CanonicalQuery(map[string]string{
		"Zebra":          "1",
		"Action":         "GetServiceStatus",
		"AWSAccessKeyId": "AK",
		"Version":        "2009-01-01",
	})
	assert.Equal(t, "AWSAccessKeyId=AK&Action=GetServiceStatus&Version=2009-01-01&Zebra=1", got)
}

func TestStringToSignShape(t *testing.T) {
	got := StringToSign("post", "MWS.AmazonServices.com", "/Orders/2013-09-01", "a=1&b=2")
	assert.Equal(t, "POST\nmws.amazonservices.com\n/Orders/2013-09-01\na=1&b=2", got)
}

func TestSignKeyOrderIndependence(t *testing.T) {
	a := map[string]string{"A": "1", "B": "2", "C": "3"}
	b := map[string]string{"C": "3", "A": "1", "B": "2"}
	sigA := Sign("GET", "mws.amazonservices.com", "/", a, "secret")
	sigB := Sign("GET", "mws.amazonservices.com", "/", b, "secret")
	assert.Equal(t, sigA, sigB)
}

func TestSignDeterministic(t *testing.T) {
	p := map[string]string{"Action": "ListOrders"}
	first := Sign("POST", "host", "/x", p, "s")
	second := Sign("POST", "host", "/x", p, "s")
	assert.Equal(t, first, second)
}

func TestSignIsBase64SHA256(t *testing.T) {
	sig := Sign("GET", "host", "/x", map[string]string{"A": "1"}, "secret")
	raw, err := base64.StdEncoding.DecodeString(sig)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestSignVariesWithInputs(t *testing.T) {
	base := Sign("GET", "host", "/x", map[string]string{"A": "1"}, "secret")
	assert.NotEqual(t, base, Sign("POST", "host", "/x", map[string]string{"A": "1"}, "secret"))
	assert.NotEqual(t, base, Sign("GET", "other", "/x", map[string]string{"A": "1"}, "secret"))
	assert.NotEqual(t, base, Sign("GET", "host", "/y", map[string]string{"A": "1"}, "secret"))
	assert.NotEqual(t, base, Sign("GET", "host", "/x", map[string]string{"A": "2"}, "secret"))
	assert.NotEqual(t, base, Sign("GET", "host", "/x", map[string]string{"A": "1"}, "other"))
}
