package client

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sangforsdk/scp-go/api/types/zone"
)

// ZoneListOptions holds parameters to list availability zones with.
type ZoneListOptions struct {
	// Currently no options are supported.
}

// ZoneListResult holds the zones returned by [Client.ZoneList].
type ZoneListResult struct {
	Items []zone.Zone
}

// ZoneList returns the availability zones (resource pools) known to the
// endpoint.
func (cli *Client) ZoneList(ctx context.Context, options ZoneListOptions) (ZoneListResult, error) {
	resp, err := cli.get(ctx, "/azs", nil, nil)
	defer ensureReaderClosed(resp)
	if err != nil {
		return ZoneListResult{}, err
	}

	items, _, err := decodeCollection(resp)
	if err != nil {
		return ZoneListResult{}, err
	}
	var zones []zone.Zone
	if len(items) > 0 {
		if err := json.Unmarshal(items, &zones); err != nil {
			return ZoneListResult{}, errors.Wrap(err, "decoding availability zones")
		}
	}
	return ZoneListResult{Items: zones}, nil
}
