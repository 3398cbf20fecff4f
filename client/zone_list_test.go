package client

import (
	"context"
	"net/http"
	"testing"

	cerrdefs "github.com/containerd/errdefs"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestZoneListError(t *testing.T) {
	client := newTestClient(t, errorMock(http.StatusInternalServerError, "Server error"))

	_, err := client.ZoneList(context.Background(), ZoneListOptions{})
	assert.Check(t, is.ErrorType(err, cerrdefs.IsInternal))
}

func TestZoneList(t *testing.T) {
	const expectedURL = "/janus/20190725/azs"
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if err := assertRequest(req, http.MethodGet, expectedURL); err != nil {
			return nil, err
		}
		return mockJSONResponse(`{
			"data": {
				"data": [
					{"id": "az-1", "name": "cluster-a", "status": "normal"},
					{"id": "az-2", "name": "cluster-b", "status": "normal"}
				]
			}
		}`)(req)
	})

	result, err := client.ZoneList(context.Background(), ZoneListOptions{})
	assert.NilError(t, err)
	assert.Check(t, is.Len(result.Items, 2))
	assert.Check(t, is.Equal(result.Items[0].Name, "cluster-a"))
	assert.Check(t, is.Equal(result.Items[1].ID, "az-2"))
}

func TestZoneListEmptyPayload(t *testing.T) {
	client := newTestClient(t, mockJSONResponse(`{"data": null}`))

	result, err := client.ZoneList(context.Background(), ZoneListOptions{})
	assert.NilError(t, err)
	assert.Check(t, is.Len(result.Items, 0))
}
