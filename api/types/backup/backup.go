package backup

// Backup is an exported copy of a virtual machine held on backup
// storage, independent of the VM's own disks.
type Backup struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
	// Location names the backup repository or path holding the copy.
	Location string `json:"location,omitempty"`
	// Size on storage in MiB.
	SizeMB int64 `json:"size_mb,omitempty"`
	// Creation time in Unix seconds, as reported.
	CreatedAt int64 `json:"create_time,omitempty"`
}
