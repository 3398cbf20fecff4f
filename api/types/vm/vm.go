package vm

// State is a string representation of the virtual machine's power
// state.
//
// It currently is an alias for string, but may become a distinct type
// in the future.
type State = string

const (
	StateRunning State = "running" // StateRunning indicates the VM is powered on.
	StateStopped State = "stopped" // StateStopped indicates the VM is powered off.
)

// Disk is one virtual disk attached to a VM.
type Disk struct {
	ID string `json:"id,omitempty"`
	// Provisioned capacity in MiB.
	SizeMB int64 `json:"size_mb"`
}

// CPUStatus reports current processor consumption.
type CPUStatus struct {
	UsedMHz float64 `json:"used_mhz"`
}

// MemoryStatus reports current memory consumption.
type MemoryStatus struct {
	UsedMB float64 `json:"used_mb"`
}

// StorageStatus reports current disk consumption.
type StorageStatus struct {
	UsedMB float64 `json:"used_mb"`
}

// Summary is a virtual machine as returned by the list endpoint.
type Summary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status State  `json:"status"`
	// Zone is the name of the availability zone hosting the VM, empty
	// when the endpoint does not place the VM in a zone.
	Zone  string `json:"az_name,omitempty"`
	Cores int    `json:"cores,omitempty"`
	// Provisioned memory in MiB.
	MemoryMB      int64         `json:"memory_mb,omitempty"`
	Disks         []Disk        `json:"disks,omitempty"`
	CPUStatus     CPUStatus     `json:"cpu_status"`
	MemoryStatus  MemoryStatus  `json:"memory_status"`
	StorageStatus StorageStatus `json:"storage_status"`
}

// ProvisionedDiskMB returns the summed capacity of all attached disks.
func (s Summary) ProvisionedDiskMB() int64 {
	var total int64
	for _, d := range s.Disks {
		total += d.SizeMB
	}
	return total
}

// VM is the detail object returned by the inspect endpoint, a superset
// of the list item.
type VM struct {
	Summary
	Description string   `json:"description,omitempty"`
	IPAddresses []string `json:"ip_addresses,omitempty"`
	// Creation time in Unix seconds, as reported.
	CreatedAt int64 `json:"create_time,omitempty"`
}
