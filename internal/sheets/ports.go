// Package sheets defines the outbound port for mirroring estimate snapshots.
package sheets

import (
	"context"
	"time"
)

// SnapshotSummary is the one-line digest of a saved snapshot that gets
// appended to the mirror sheet. Figures come from the computed aggregate.
type SnapshotSummary struct {
	SyncedAt       time.Time
	Version        int64
	ProjectName    string
	DurationMonths int
	PricingModel   string
	MemberCount    int
	MonthlyRevenue float64
	TotalRevenue   float64
	TotalCost      float64
	NetValue       float64
}

// SnapshotWriter appends snapshot summaries to an external sheet.
type SnapshotWriter interface {
	AppendSnapshot(ctx context.Context, s SnapshotSummary) (rowRef string, err error)
}
