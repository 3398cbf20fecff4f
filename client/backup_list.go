package client

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sangforsdk/scp-go/api/types/backup"
)

// BackupListOptions holds parameters to list backups with.
type BackupListOptions struct {
	// Currently no options are supported.
}

// BackupListResult holds the backups returned by [Client.BackupList].
type BackupListResult struct {
	Items []backup.Backup
}

// BackupList returns the backups of the given virtual machine.
func (cli *Client) BackupList(ctx context.Context, vmID string, options BackupListOptions) (BackupListResult, error) {
	vmID, err := trimID("virtual machine", vmID)
	if err != nil {
		return BackupListResult{}, err
	}

	resp, err := cli.get(ctx, "/servers/"+vmID+"/backups", nil, nil)
	defer ensureReaderClosed(resp)
	if err != nil {
		return BackupListResult{}, err
	}

	items, _, err := decodeCollection(resp)
	if err != nil {
		return BackupListResult{}, err
	}
	var backups []backup.Backup
	if len(items) > 0 {
		if err := json.Unmarshal(items, &backups); err != nil {
			return BackupListResult{}, errors.Wrap(err, "decoding backups")
		}
	}
	return BackupListResult{Items: backups}, nil
}
