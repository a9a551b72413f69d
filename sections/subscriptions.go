package sections

import (
	"context"

	"github.com/gurre/mws/client"
	"github.com/gurre/mws/params"
	"github.com/gurre/mws/response"
)

// Subscriptions manages push notification destinations and
// subscriptions.
type Subscriptions struct {
	section
}

// NewSubscriptions builds the Subscriptions facade.
func NewSubscriptions(c *client.Client) *Subscriptions {
	return &Subscriptions{section{c: c, d: client.SectionDescriptor{
		Name:         "Subscriptions",
		Path:         "/Subscriptions/2013-07-01",
		Version:      "2013-07-01",
		Namespace:    "http://mws.amazonservices.com/Subscriptions/2013-07-01",
		AccountLabel: "SellerId",
	}}}
}

// sqsDestinationParams renders a destination pointing at an SQS queue.
func sqsDestinationParams(prefix, sqsQueueURL string) map[string]any {
	return map[string]any{
		prefix + ".DeliveryChannel":              "SQS",
		prefix + ".AttributeList.member.1.Key":   "sqsQueueUrl",
		prefix + ".AttributeList.member.1.Value": sqsQueueURL,
	}
}

// RegisterDestination registers an SQS queue as a notification
// destination for a marketplace.
func (s *Subscriptions) RegisterDestination(ctx context.Context, marketplaceID, sqsQueueURL string) (*response.Response, error) {
	if marketplaceID == "" {
		marketplaceID = s.c.MarketplaceID()
	}
	return s.request(ctx, client.Request{
		Action: "RegisterDestination",
		Params: params.Merge(
			map[string]any{"MarketplaceId": marketplaceID},
			sqsDestinationParams("Destination", sqsQueueURL),
		),
	})
}

// DeregisterDestination removes a registered destination.
func (s *Subscriptions) DeregisterDestination(ctx context.Context, marketplaceID, sqsQueueURL string) (*response.Response, error) {
	if marketplaceID == "" {
		marketplaceID = s.c.MarketplaceID()
	}
	return s.request(ctx, client.Request{
		Action: "DeregisterDestination",
		Params: params.Merge(
			map[string]any{"MarketplaceId": marketplaceID},
			sqsDestinationParams("Destination", sqsQueueURL),
		),
	})
}

// SendTestNotificationToDestination asks the service to deliver a test
// message to a registered destination.
func (s *Subscriptions) SendTestNotificationToDestination(ctx context.Context, marketplaceID, sqsQueueURL string) (*response.Response, error) {
	if marketplaceID == "" {
		marketplaceID = s.c.MarketplaceID()
	}
	return s.request(ctx, client.Request{
		Action: "SendTestNotificationToDestination",
		Params: params.Merge(
			map[string]any{"MarketplaceId": marketplaceID},
			sqsDestinationParams("Destination", sqsQueueURL),
		),
	})
}

// CreateSubscription subscribes a notification type to a destination.
func (s *Subscriptions) CreateSubscription(ctx context.Context, marketplaceID, notificationType, sqsQueueURL string, enabled any) (*response.Response, error) {
	if marketplaceID == "" {
		marketplaceID = s.c.MarketplaceID()
	}
	return s.request(ctx, client.Request{
		Action: "CreateSubscription",
		Params: params.Merge(
			map[string]any{
				"MarketplaceId":                 marketplaceID,
				"Subscription.NotificationType": notificationType,
				"Subscription.IsEnabled":        params.ToBool(enabled),
			},
			sqsDestinationParams("Subscription.Destination", sqsQueueURL),
		),
	})
}

// DeleteSubscription removes a subscription.
func (s *Subscriptions) DeleteSubscription(ctx context.Context, marketplaceID, notificationType, sqsQueueURL string) (*response.Response, error) {
	if marketplaceID == "" {
		marketplaceID = s.c.MarketplaceID()
	}
	return s.request(ctx, client.Request{
		Action: "DeleteSubscription",
		Params: params.Merge(
			map[string]any{
				"MarketplaceId":    marketplaceID,
				"NotificationType": notificationType,
			},
			sqsDestinationParams("Destination", sqsQueueURL),
		),
	})
}

// ListSubscriptions lists the subscriptions for a marketplace.
func (s *Subscriptions) ListSubscriptions(ctx context.Context, marketplaceID string) (*response.Response, error) {
	if marketplaceID == "" {
		marketplaceID = s.c.MarketplaceID()
	}
	return s.request(ctx, client.Request{
		Action: "ListSubscriptions",
		Params: map[string]any{"MarketplaceId": marketplaceID},
	})
}

// ListRegisteredDestinations lists the registered destinations for a
// marketplace.
func (s *Subscriptions) ListRegisteredDestinations(ctx context.Context, marketplaceID string) (*response.Response, error) {
	if marketplaceID == "" {
		marketplaceID = s.c.MarketplaceID()
	}
	return s.request(ctx, client.Request{
		Action: "ListRegisteredDestinations",
		Params: map[string]any{"MarketplaceId": marketplaceID},
	})
}
