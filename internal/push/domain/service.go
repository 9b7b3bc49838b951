package domain

import "context"

// Sender delivers one web-push message. expired reports that the endpoint
// is gone for good and the subscription should be dropped.
type Sender interface {
	Send(ctx context.Context, sub Subscription, message string) (expired bool, err error)
}

type Service interface {
	Subscribe(ctx context.Context, req SubscribeRequest) error

	// Notify fans message out to every subscription of the recipients.
	// Failures are swallowed; stale endpoints are cleaned up as a side
	// effect. Does nothing when VAPID keys are not configured.
	Notify(ctx context.Context, groupID string, recipientMemberIDs []string, message string)
}
