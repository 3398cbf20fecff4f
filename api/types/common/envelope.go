package common

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// Envelope is the outer wrapper on every response body:
//
//	{"data": ...}
type Envelope struct {
	Data json.RawMessage `json:"data"`
}

// Collection is the inner wrapper on list responses:
//
//	{"data": [...], "next_page_num": 2}
//
// Items stays raw so each caller can decode into its own element type.
type Collection struct {
	Items    json.RawMessage `json:"data"`
	NextPage PageNumber      `json:"next_page_num"`
	Total    int             `json:"total,omitempty"`
}

// PageNumber is a 1-based pagination cursor. The service emits it as a
// JSON number or a numeric string depending on the endpoint, and omits
// it or sends an empty string on the last page; all of those decode to
// zero values except malformed strings.
type PageNumber int

// UnmarshalJSON accepts 2, "2", "", and null.
func (p *PageNumber) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*p = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*p = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return errors.Wrap(err, "parsing page number")
		}
		*p = PageNumber(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = PageNumber(n)
	return nil
}
