package client

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sangforsdk/scp-go/api/types/report"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

// reportTestTime matches the clock newTestClient pins.
var reportTestTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func reportInventoryMock() func(req *http.Request) (*http.Response, error) {
	return func(req *http.Request) (*http.Response, error) {
		switch {
		case req.URL.Path == "/janus/20190725/azs":
			return mockJSONResponse(`{
				"data": {
					"data": [
						{"id": "az-1", "name": "cluster-a"},
						{"id": "az-2", "name": "cluster-b"}
					]
				}
			}`)(req)
		case req.URL.Path == "/janus/20190725/servers" && req.URL.Query().Get("page_num") == "":
			return mockJSONResponse(`{
				"data": {
					"data": [
						{
							"id": "vm-1", "name": "web-01", "status": "running", "az_name": "cluster-a",
							"cores": 4, "memory_mb": 8192,
							"disks": [{"size_mb": 524288}, {"size_mb": 524288}],
							"cpu_status": {"used_mhz": 1200.5},
							"memory_status": {"used_mb": 2048},
							"storage_status": {"used_mb": 1024}
						},
						{
							"id": "vm-2", "name": "db-01", "status": "stopped", "az_name": "cluster-a",
							"cores": 2, "memory_mb": 1000
						}
					],
					"next_page_num": 2
				}
			}`)(req)
		case req.URL.Path == "/janus/20190725/servers" && req.URL.Query().Get("page_num") == "2":
			return mockJSONResponse(`{
				"data": {
					"data": [
						{"id": "vm-3", "name": "worker-01", "status": "suspended", "cores": 1, "memory_mb": 512}
					]
				}
			}`)(req)
		default:
			return nil, fmt.Errorf("unexpected request %s %s", req.Method, req.URL)
		}
	}
}

func TestInfrastructureReport(t *testing.T) {
	client := newTestClient(t, reportInventoryMock())

	rep, err := client.InfrastructureReport(context.Background(), ReportOptions{})
	assert.NilError(t, err)

	expected := report.Report{
		GeneratedAt: reportTestTime,
		Totals: report.Totals{
			VMs:      3,
			ByStatus: report.StatusCount{Running: 1, Stopped: 1, Other: 1},
			Provisioned: report.Provisioned{
				CPUCores: 7,
				MemoryGB: 9.48, // 8192 + 1000 + 512 MiB
				DiskTB:   1,
			},
			Used: report.Used{CPUMHz: 1200.5, MemoryGB: 2, DiskGB: 1},
		},
		Zones: map[string]report.Totals{
			"cluster-a": {
				VMs:      2,
				ByStatus: report.StatusCount{Running: 1, Stopped: 1},
				Provisioned: report.Provisioned{
					CPUCores: 6,
					MemoryGB: 8.98,
					DiskTB:   1,
				},
				Used: report.Used{CPUMHz: 1200.5, MemoryGB: 2, DiskGB: 1},
			},
			// Declared by the endpoint but hosting no VMs.
			"cluster-b": {},
			// vm-3 reports no availability zone.
			"": {
				VMs:      1,
				ByStatus: report.StatusCount{Other: 1},
				Provisioned: report.Provisioned{
					CPUCores: 1,
					MemoryGB: 0.5,
				},
			},
		},
	}
	assert.DeepEqual(t, rep, expected, cmpopts.EquateApprox(0, 0.005))
}

// TestInfrastructureReportEmpty distinguishes "no data" from "request
// failed": an endpoint with no zones and no VMs yields a zero-valued
// report and a nil error.
func TestInfrastructureReportEmpty(t *testing.T) {
	client := newTestClient(t, mockJSONResponse(`{"data": {"data": []}}`))

	rep, err := client.InfrastructureReport(context.Background(), ReportOptions{})
	assert.NilError(t, err)
	assert.Check(t, is.Equal(rep.Totals.VMs, 0))
	assert.Check(t, is.Equal(rep.Totals, report.Totals{}))
	assert.Check(t, is.Len(rep.Zones, 0))
	assert.Check(t, is.Equal(rep.GeneratedAt, reportTestTime))
}

func TestInfrastructureReportZoneError(t *testing.T) {
	client := newTestClient(t, errorMock(http.StatusUnauthorized, "signature mismatch"))

	_, err := client.InfrastructureReport(context.Background(), ReportOptions{})
	assert.Check(t, is.ErrorContains(err, "listing availability zones"))
	assert.Check(t, is.ErrorType(err, cerrdefs.IsUnauthorized))
}

func TestInfrastructureReportVMError(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path == "/janus/20190725/azs" {
			return mockJSONResponse(`{"data": {"data": []}}`)(req)
		}
		return errorMock(http.StatusInternalServerError, "Server error")(req)
	})

	_, err := client.InfrastructureReport(context.Background(), ReportOptions{})
	assert.Check(t, is.ErrorContains(err, "listing virtual machines"))
	assert.Check(t, is.ErrorType(err, cerrdefs.IsInternal))
}

// TestInfrastructureReportPageSize forwards the configured page size to
// the inventory scan.
func TestInfrastructureReportPageSize(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path == "/janus/20190725/servers" {
			if v := req.URL.Query().Get("page_size"); v != "25" {
				return nil, fmt.Errorf("expected page_size 25, got %q", v)
			}
		}
		return mockJSONResponse(`{"data": {"data": []}}`)(req)
	})

	_, err := client.InfrastructureReport(context.Background(), ReportOptions{PageSize: 25})
	assert.NilError(t, err)
}
