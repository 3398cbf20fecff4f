package client

import (
	"context"

	"github.com/sangforsdk/scp-go/api/types/report"
	"github.com/sangforsdk/scp-go/api/types/vm"
)

// APIClient is an interface that clients that talk with an SCP endpoint
// should implement. Consumers can declare the subset they need for
// mocking.
type APIClient interface {
	ZoneAPIClient
	VMAPIClient
	SnapshotAPIClient
	BackupAPIClient
	ReportAPIClient

	APIVersion() string
	Host() string
	Close() error
}

// ZoneAPIClient defines API client methods for availability zones.
type ZoneAPIClient interface {
	ZoneList(ctx context.Context, options ZoneListOptions) (ZoneListResult, error)
}

// VMAPIClient defines API client methods for virtual machines.
type VMAPIClient interface {
	VMList(ctx context.Context, options VMListOptions) (VMListResult, error)
	VMListAll(ctx context.Context, options VMListAllOptions) ([]vm.Summary, error)
	VMInspect(ctx context.Context, vmID string) (vm.VM, error)
	VMFind(ctx context.Context, identifier string) (vm.VM, error)
}

// SnapshotAPIClient defines API client methods for snapshots.
type SnapshotAPIClient interface {
	SnapshotList(ctx context.Context, vmID string, options SnapshotListOptions) (SnapshotListResult, error)
}

// BackupAPIClient defines API client methods for backups.
type BackupAPIClient interface {
	BackupList(ctx context.Context, vmID string, options BackupListOptions) (BackupListResult, error)
}

// ReportAPIClient defines API client methods for infrastructure
// reports.
type ReportAPIClient interface {
	InfrastructureReport(ctx context.Context, options ReportOptions) (report.Report, error)
}

// Ensure that Client always implements APIClient.
var _ APIClient = &Client{}
