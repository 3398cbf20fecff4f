package client

import (
	"context"
	"net/http"
	"testing"

	cerrdefs "github.com/containerd/errdefs"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestSnapshotListError(t *testing.T) {
	client := newTestClient(t, errorMock(http.StatusInternalServerError, "Server error"))

	_, err := client.SnapshotList(context.Background(), "vm_id", SnapshotListOptions{})
	assert.Check(t, is.ErrorType(err, cerrdefs.IsInternal))

	_, err = client.SnapshotList(context.Background(), "", SnapshotListOptions{})
	assert.Check(t, is.ErrorType(err, cerrdefs.IsInvalidArgument))
	assert.Check(t, is.ErrorContains(err, "value is empty"))
}

func TestSnapshotList(t *testing.T) {
	const expectedURL = "/janus/20190725/servers/vm_id/snapshots"
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if err := assertRequest(req, http.MethodGet, expectedURL); err != nil {
			return nil, err
		}
		return mockJSONResponse(`{
			"data": {
				"data": [
					{"id": "snap-1", "name": "before-upgrade", "status": "ok", "size_mb": 2048, "create_time": 1704067200},
					{"id": "snap-2", "name": "nightly", "status": "ok", "size_mb": 1024, "create_time": 1704153600}
				]
			}
		}`)(req)
	})

	result, err := client.SnapshotList(context.Background(), "vm_id", SnapshotListOptions{})
	assert.NilError(t, err)
	assert.Check(t, is.Len(result.Items, 2))
	assert.Check(t, is.Equal(result.Items[0].Name, "before-upgrade"))
	assert.Check(t, is.Equal(result.Items[1].SizeMB, int64(1024)))
}
