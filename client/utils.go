package client

import (
	"strings"
)

type emptyIDError string

func (e emptyIDError) InvalidParameter() {}

func (e emptyIDError) Error() string {
	return "invalid " + string(e) + " name or ID: value is empty"
}

// trimID trims the given object-ID / name, returning an error if it's
// empty.
func trimID(objType, id string) (string, error) {
	id = strings.TrimSpace(id)
	if len(id) == 0 {
		return "", emptyIDError(objType)
	}
	return id, nil
}
