package client

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"github.com/sangforsdk/scp-go/api/types/report"
	"github.com/sangforsdk/scp-go/api/types/vm"
)

// ReportOptions holds parameters for [Client.InfrastructureReport].
type ReportOptions struct {
	// PageSize bounds the page size of the underlying inventory scan.
	// Defaults to 100.
	PageSize int
}

// InfrastructureReport scans every virtual machine on the endpoint and
// aggregates them into overall and per-zone resource totals. Zones
// without VMs appear with zero totals; VMs reporting no zone aggregate
// under the empty zone name. An empty infrastructure yields a
// zero-valued report and a nil error, so callers can tell "no data"
// from "request failed".
func (cli *Client) InfrastructureReport(ctx context.Context, options ReportOptions) (report.Report, error) {
	zones, err := cli.ZoneList(ctx, ZoneListOptions{})
	if err != nil {
		return report.Report{}, errors.Wrap(err, "listing availability zones")
	}
	vms, err := cli.VMListAll(ctx, VMListAllOptions{PageSize: options.PageSize})
	if err != nil {
		return report.Report{}, errors.Wrap(err, "listing virtual machines")
	}

	rep := report.Report{
		GeneratedAt: cli.now(),
		Zones:       make(map[string]report.Totals, len(zones.Items)),
	}
	for _, z := range zones.Items {
		if z.Name != "" {
			rep.Zones[z.Name] = report.Totals{}
		}
	}

	for _, s := range vms {
		accumulate(&rep.Totals, s)
		zt := rep.Zones[s.Zone]
		accumulate(&zt, s)
		rep.Zones[s.Zone] = zt
	}

	roundTotals(&rep.Totals)
	for name, t := range rep.Zones {
		roundTotals(&t)
		rep.Zones[name] = t
	}
	return rep, nil
}

// accumulate adds one VM to a totals bucket. Rounding happens once at
// the end of the scan, not per VM.
func accumulate(t *report.Totals, s vm.Summary) {
	t.VMs++
	switch s.Status {
	case vm.StateRunning:
		t.ByStatus.Running++
	case vm.StateStopped:
		t.ByStatus.Stopped++
	default:
		t.ByStatus.Other++
	}

	t.Provisioned.CPUCores += s.Cores
	t.Provisioned.MemoryGB += float64(s.MemoryMB) / 1024
	t.Provisioned.DiskTB += float64(s.ProvisionedDiskMB()) / (1024 * 1024)

	t.Used.CPUMHz += s.CPUStatus.UsedMHz
	t.Used.MemoryGB += s.MemoryStatus.UsedMB / 1024
	t.Used.DiskGB += s.StorageStatus.UsedMB / 1024
}

func roundTotals(t *report.Totals) {
	t.Provisioned.MemoryGB = round2(t.Provisioned.MemoryGB)
	t.Provisioned.DiskTB = round2(t.Provisioned.DiskTB)
	t.Used.CPUMHz = round2(t.Used.CPUMHz)
	t.Used.MemoryGB = round2(t.Used.MemoryGB)
	t.Used.DiskGB = round2(t.Used.DiskGB)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
