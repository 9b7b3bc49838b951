package domain

import "context"

type Service interface {
	// SystemCatalog lists the shared catalog visible without a group.
	SystemCatalog(ctx context.Context, lang Language) (Layout, error)

	// GroupLayout merges the system catalog with the group's custom rows.
	GroupLayout(ctx context.Context, groupID string, lang Language) (Layout, error)

	CreateTab(ctx context.Context, req CreateTabRequest) (Tab, error)
	CreateItem(ctx context.Context, req CreateItemRequest) (Item, error)

	// ArchiveTab and ArchiveItem soft-delete custom rows. Archiving an
	// already archived row is a no-op.
	ArchiveTab(ctx context.Context, groupID, tabID string) error
	ArchiveItem(ctx context.Context, groupID, itemID string) error
}
