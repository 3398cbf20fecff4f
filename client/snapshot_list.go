package client

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sangforsdk/scp-go/api/types/snapshot"
)

// SnapshotListOptions holds parameters to list snapshots with.
type SnapshotListOptions struct {
	// Currently no options are supported.
}

// SnapshotListResult holds the snapshots returned by
// [Client.SnapshotList].
type SnapshotListResult struct {
	Items []snapshot.Snapshot
}

// SnapshotList returns the snapshots of the given virtual machine.
func (cli *Client) SnapshotList(ctx context.Context, vmID string, options SnapshotListOptions) (SnapshotListResult, error) {
	vmID, err := trimID("virtual machine", vmID)
	if err != nil {
		return SnapshotListResult{}, err
	}

	resp, err := cli.get(ctx, "/servers/"+vmID+"/snapshots", nil, nil)
	defer ensureReaderClosed(resp)
	if err != nil {
		return SnapshotListResult{}, err
	}

	items, _, err := decodeCollection(resp)
	if err != nil {
		return SnapshotListResult{}, err
	}
	var snapshots []snapshot.Snapshot
	if len(items) > 0 {
		if err := json.Unmarshal(items, &snapshots); err != nil {
			return SnapshotListResult{}, errors.Wrap(err, "decoding snapshots")
		}
	}
	return SnapshotListResult{Items: snapshots}, nil
}
