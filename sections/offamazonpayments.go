package sections

import (
	"context"

	"github.com/gurre/mws/client"
	"github.com/gurre/mws/response"
)

// OffAmazonPayments drives the Amazon Pay order reference workflow. The
// sandbox flag switches the URI path at construction.
type OffAmazonPayments struct {
	section
}

// NewOffAmazonPayments builds the OffAmazonPayments facade against the
// production environment.
func NewOffAmazonPayments(c *client.Client) *OffAmazonPayments {
	return newOffAmazonPayments(c, "/OffAmazonPayments/2013-01-01")
}

// NewOffAmazonPaymentsSandbox targets the payments sandbox.
func NewOffAmazonPaymentsSandbox(c *client.Client) *OffAmazonPayments {
	return newOffAmazonPayments(c, "/OffAmazonPayments_Sandbox/2013-01-01")
}

func newOffAmazonPayments(c *client.Client, path string) *OffAmazonPayments {
	return &OffAmazonPayments{section{c: c, d: client.SectionDescriptor{
		Name:         "OffAmazonPayments",
		Path:         path,
		Version:      "2013-01-01",
		Namespace:    "https://mws.amazonservices.com/schema/OffAmazonPayments/2013-01-01",
		AccountLabel: "SellerId",
	}}}
}

// GetOrderReferenceDetails fetches an order reference and its current
// state.
func (o *OffAmazonPayments) GetOrderReferenceDetails(ctx context.Context, orderReferenceID, addressConsentToken string) (*response.Response, error) {
	p := map[string]any{"AmazonOrderReferenceId": orderReferenceID}
	if addressConsentToken != "" {
		p["AddressConsentToken"] = addressConsentToken
	}
	return o.request(ctx, client.Request{Action: "GetOrderReferenceDetails", Params: p})
}

// ConfirmOrderReference confirms an order reference so it can be
// authorized.
func (o *OffAmazonPayments) ConfirmOrderReference(ctx context.Context, orderReferenceID string) (*response.Response, error) {
	return o.request(ctx, client.Request{
		Action: "ConfirmOrderReference",
		Params: map[string]any{"AmazonOrderReferenceId": orderReferenceID},
	})
}

// CancelOrderReference cancels an order reference and releases any
// authorization hold.
func (o *OffAmazonPayments) CancelOrderReference(ctx context.Context, orderReferenceID, reason string) (*response.Response, error) {
	p := map[string]any{"AmazonOrderReferenceId": orderReferenceID}
	if reason != "" {
		p["CancelationReason"] = reason
	}
	return o.request(ctx, client.Request{Action: "CancelOrderReference", Params: p})
}

// Authorize places a hold on the buyer's payment method.
func (o *OffAmazonPayments) Authorize(ctx context.Context, orderReferenceID, authorizationReferenceID string, amount float64, currencyCode string) (*response.Response, error) {
	return o.request(ctx, client.Request{
		Action: "Authorize",
		Params: map[string]any{
			"AmazonOrderReferenceId":           orderReferenceID,
			"AuthorizationReferenceId":         authorizationReferenceID,
			"AuthorizationAmount.Amount":       amount,
			"AuthorizationAmount.CurrencyCode": currencyCode,
		},
	})
}

// Capture captures funds against an open authorization.
func (o *OffAmazonPayments) Capture(ctx context.Context, authorizationID, captureReferenceID string, amount float64, currencyCode string) (*response.Response, error) {
	return o.request(ctx, client.Request{
		Action: "Capture",
		Params: map[string]any{
			"AmazonAuthorizationId":      authorizationID,
			"CaptureReferenceId":         captureReferenceID,
			"CaptureAmount.Amount":       amount,
			"CaptureAmount.CurrencyCode": currencyCode,
		},
	})
}

// Refund refunds a captured payment.
func (o *OffAmazonPayments) Refund(ctx context.Context, captureID, refundReferenceID string, amount float64, currencyCode string) (*response.Response, error) {
	return o.request(ctx, client.Request{
		Action: "Refund",
		Params: map[string]any{
			"AmazonCaptureId":           captureID,
			"RefundReferenceId":         refundReferenceID,
			"RefundAmount.Amount":       amount,
			"RefundAmount.CurrencyCode": currencyCode,
		},
	})
}
