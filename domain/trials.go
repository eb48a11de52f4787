package domain

import "context"

// ClaimScanWindow ограничивает поиск выданных наборов последними событиями.
// Старые выдачи за окном не видны — осознанное ограничение, а не гарантия.
const ClaimScanWindow = 200

type TrialsRepository interface {
	GetUserBySubject(ctx context.Context, subject string) (*User, error)
	ListClaimEvents(ctx context.Context, userUUID string, limit int) ([]ProgressionEvent, error)
	CachedClaimedLeagues(ctx context.Context, userUUID string) ([]string, bool)
	StoreClaimedLeagues(ctx context.Context, userUUID string, leagues []string)
	InvalidateClaimedLeagues(ctx context.Context, userUUID string)
}
