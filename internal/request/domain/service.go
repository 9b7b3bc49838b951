package domain

import (
	"context"

	catalogdomain "github.com/tanomu-app/tanomu/internal/catalog/domain"
)

// Notifier fans a notification out to group members. Delivery is best
// effort; implementations never fail the surrounding operation.
type Notifier interface {
	Notify(ctx context.Context, groupID string, recipientMemberIDs []string, message string)
}

type Service interface {
	Create(ctx context.Context, req CreateRequestRequest) (CreateRequestResponse, error)
	Inbox(ctx context.Context, memberID, groupID string, lang catalogdomain.Language) ([]InboxEvent, error)

	// Acknowledge marks the request seen. Only a requested request moves
	// to acknowledged; later states are left as they are.
	Acknowledge(ctx context.Context, memberID, requestID string) (StatusResponse, error)

	// Complete marks the request done regardless of its current state.
	Complete(ctx context.Context, memberID, requestID string) (StatusResponse, error)
}
