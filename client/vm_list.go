package client

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/containerd/log"
	"github.com/pkg/errors"
	"github.com/sangforsdk/scp-go/api/types/vm"
)

// defaultPageSize is the page size used by exhaustive listings when the
// caller does not choose one.
const defaultPageSize = 100

// VMListOptions holds parameters to list virtual machines with.
type VMListOptions struct {
	// Page requests one specific page. Zero asks the endpoint for its
	// first page.
	Page int
	// PageSize bounds the number of items per page. Zero uses the
	// endpoint default.
	PageSize int
}

// VMListResult holds one page of virtual machines.
type VMListResult struct {
	Items []vm.Summary
	// NextPage is the cursor for the page after this one. Zero means
	// this was the last page.
	NextPage int
}

// VMList returns one page of the virtual machines in the endpoint's
// inventory. Use [Client.VMListAll] to walk all pages.
func (cli *Client) VMList(ctx context.Context, options VMListOptions) (VMListResult, error) {
	query := url.Values{}

	if options.Page > 0 {
		query.Set("page_num", strconv.Itoa(options.Page))
	}

	if options.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(options.PageSize))
	}

	resp, err := cli.get(ctx, "/servers", query, nil)
	defer ensureReaderClosed(resp)
	if err != nil {
		return VMListResult{}, err
	}

	items, next, err := decodeCollection(resp)
	if err != nil {
		return VMListResult{}, err
	}
	var vms []vm.Summary
	if len(items) > 0 {
		if err := json.Unmarshal(items, &vms); err != nil {
			return VMListResult{}, errors.Wrap(err, "decoding virtual machines")
		}
	}
	return VMListResult{Items: vms, NextPage: int(next)}, nil
}

// VMListAllOptions holds parameters for [Client.VMListAll].
type VMListAllOptions struct {
	// PageSize bounds the number of items fetched per request.
	// Defaults to 100.
	PageSize int
}

// VMListAll returns the full virtual machine inventory, following the
// endpoint's page cursor until the last page. The walk stops early on
// an empty page or a cursor that does not advance.
func (cli *Client) VMListAll(ctx context.Context, options VMListAllOptions) ([]vm.Summary, error) {
	pageSize := options.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	var all []vm.Summary
	page := 0
	for {
		res, err := cli.VMList(ctx, VMListOptions{Page: page, PageSize: pageSize})
		if err != nil {
			return nil, err
		}
		all = append(all, res.Items...)

		log.G(ctx).WithFields(log.Fields{
			"page":  page,
			"total": len(all),
		}).Debug("fetched virtual machine page")

		if res.NextPage <= page || len(res.Items) == 0 {
			return all, nil
		}
		page = res.NextPage
	}
}
