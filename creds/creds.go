// Package creds holds the MWS credential triple. MWS authenticates with a
// regular AWS access key pair plus a seller (merchant) identifier, and
// optionally a delegation token when acting on behalf of another seller.
// Credentials are immutable for the lifetime of a client.
package creds

import (
	"context"
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
)

// Environment variables consulted by LoadDefault for the MWS-specific
// fields the AWS credential chain does not carry.
const (
	EnvSellerID  = "MWS_SELLER_ID"
	EnvAuthToken = "MWS_AUTH_TOKEN"
)

// Credentials identifies the caller on every MWS request.
type Credentials struct {
	AccessKey string // AWS access key ID, sent as AWSAccessKeyId
	SecretKey string // AWS secret key, used only for signing
	SellerID  string // Seller/merchant identifier, sent as Merchant or SellerId
	AuthToken string // Optional MWSAuthToken for delegated access
}

// Validate checks that the required fields are present, naming the first
// missing one.
func (c Credentials) Validate() error {
	if c.AccessKey == "" {
		return fmt.Errorf("access key is required")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key is required")
	}
	if c.SellerID == "" {
		return fmt.Errorf("seller ID is required")
	}
	return nil
}

// LoadDefault resolves the access key pair through the standard AWS
// credential chain (environment, shared config, instance metadata) and
// the seller ID and auth token from MWS_SELLER_ID and MWS_AUTH_TOKEN.
func LoadDefault(ctx context.Context) (Credentials, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	retrieved, err := cfg.Credentials.Retrieve(ctx)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to resolve AWS credentials: %w", err)
	}
	c := Credentials{
		AccessKey: retrieved.AccessKeyID,
		SecretKey: retrieved.SecretAccessKey,
		SellerID:  os.Getenv(EnvSellerID),
		AuthToken: os.Getenv(EnvAuthToken),
	}
	if err := c.Validate(); err != nil {
		return Credentials{}, err
	}
	return c, nil
}
