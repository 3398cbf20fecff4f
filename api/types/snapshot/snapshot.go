package snapshot

// Snapshot is a point-in-time capture of a virtual machine's disks.
type Snapshot struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status,omitempty"`
	Description string `json:"description,omitempty"`
	// Size on storage in MiB.
	SizeMB int64 `json:"size_mb,omitempty"`
	// Creation time in Unix seconds, as reported.
	CreatedAt int64 `json:"create_time,omitempty"`
}
