package report

import (
	"fmt"
	"time"

	units "github.com/docker/go-units"
)

// StatusCount buckets virtual machines by power state. States other
// than running and stopped land in Other.
type StatusCount struct {
	Running int `json:"running"`
	Stopped int `json:"stopped"`
	Other   int `json:"other"`
}

// Provisioned is the capacity allocated to virtual machines, whether
// or not currently consumed.
type Provisioned struct {
	CPUCores int     `json:"cpu_cores"`
	MemoryGB float64 `json:"memory_gb"`
	DiskTB   float64 `json:"disk_tb"`
}

// Used is the measured current consumption.
type Used struct {
	CPUMHz   float64 `json:"cpu_mhz"`
	MemoryGB float64 `json:"memory_gb"`
	DiskGB   float64 `json:"disk_gb"`
}

// Totals aggregates one slice of the infrastructure, either the whole
// estate or a single availability zone. Float fields are rounded to
// two decimals.
type Totals struct {
	VMs         int         `json:"total_vms"`
	ByStatus    StatusCount `json:"vms_by_status"`
	Provisioned Provisioned `json:"total_provisioned"`
	Used        Used        `json:"total_used"`
}

// Report is a point-in-time aggregation over every VM the endpoint
// reports. Zones is keyed by availability-zone name; VMs without a
// zone aggregate under the empty key.
type Report struct {
	GeneratedAt time.Time         `json:"report_generated_at"`
	Totals      Totals            `json:"overall_totals"`
	Zones       map[string]Totals `json:"by_availability_zone"`
}

// String renders a one-line summary of the overall totals.
func (r Report) String() string {
	return fmt.Sprintf("%d VMs (%d running, %d stopped, %d other), %d cores, %s memory, %s disk provisioned",
		r.Totals.VMs,
		r.Totals.ByStatus.Running, r.Totals.ByStatus.Stopped, r.Totals.ByStatus.Other,
		r.Totals.Provisioned.CPUCores,
		units.BytesSize(r.Totals.Provisioned.MemoryGB*float64(units.GiB)),
		units.BytesSize(r.Totals.Provisioned.DiskTB*float64(units.TiB)))
}
