package client

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangforsdk/scp-go/api/types/vm"
)

// VMFind resolves identifier to a virtual machine. An identifier that
// parses as an RFC 4122 UUID is treated as a VM ID and inspected
// directly; anything else is matched against VM names with an
// exhaustive inventory scan. A miss returns an error matching
// [IsErrNotFound], never an empty result.
func (cli *Client) VMFind(ctx context.Context, identifier string) (vm.VM, error) {
	identifier, err := trimID("virtual machine", identifier)
	if err != nil {
		return vm.VM{}, err
	}

	if _, err := uuid.Parse(identifier); err == nil {
		return cli.VMInspect(ctx, identifier)
	}

	vms, err := cli.VMListAll(ctx, VMListAllOptions{})
	if err != nil {
		return vm.VM{}, err
	}
	for _, candidate := range vms {
		if candidate.Name == identifier {
			return cli.VMInspect(ctx, candidate.ID)
		}
	}
	return vm.VM{}, vmNotFoundError{identifier: identifier}
}
