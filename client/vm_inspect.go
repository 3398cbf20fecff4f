package client

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sangforsdk/scp-go/api/types/vm"
)

// VMInspect returns detailed information about the virtual machine with
// the given ID.
func (cli *Client) VMInspect(ctx context.Context, vmID string) (vm.VM, error) {
	vmID, err := trimID("virtual machine", vmID)
	if err != nil {
		return vm.VM{}, err
	}

	resp, err := cli.get(ctx, "/servers/"+vmID, nil, nil)
	defer ensureReaderClosed(resp)
	if err != nil {
		return vm.VM{}, err
	}

	var env struct {
		Data vm.VM `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return vm.VM{}, errors.Wrap(err, "decoding virtual machine")
	}
	return env.Data, nil
}
