package client

import (
	"context"
	"net/http"
	"testing"

	cerrdefs "github.com/containerd/errdefs"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestBackupListError(t *testing.T) {
	client := newTestClient(t, errorMock(http.StatusInternalServerError, "Server error"))

	_, err := client.BackupList(context.Background(), "vm_id", BackupListOptions{})
	assert.Check(t, is.ErrorType(err, cerrdefs.IsInternal))

	_, err = client.BackupList(context.Background(), "   ", BackupListOptions{})
	assert.Check(t, is.ErrorType(err, cerrdefs.IsInvalidArgument))
	assert.Check(t, is.ErrorContains(err, "value is empty"))
}

func TestBackupList(t *testing.T) {
	const expectedURL = "/janus/20190725/servers/vm_id/backups"
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if err := assertRequest(req, http.MethodGet, expectedURL); err != nil {
			return nil, err
		}
		return mockJSONResponse(`{
			"data": {
				"data": [
					{"id": "bak-1", "name": "weekly-full", "status": "ok", "location": "nas-01", "size_mb": 40960, "create_time": 1704067200}
				]
			}
		}`)(req)
	})

	result, err := client.BackupList(context.Background(), "vm_id", BackupListOptions{})
	assert.NilError(t, err)
	assert.Check(t, is.Len(result.Items, 1))
	assert.Check(t, is.Equal(result.Items[0].Location, "nas-01"))
}
