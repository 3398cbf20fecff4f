package sigv4

import (
	"sync"
)

// deriveKey chains HMAC-SHA256 through the scope components, starting
// from the prefixed secret key.
func deriveKey(secretKey, date, region, service string) []byte {
	k := makeHmac([]byte(keyPrefix+secretKey), []byte(date))
	k = makeHmac(k, []byte(region))
	k = makeHmac(k, []byte(service))
	return makeHmac(k, []byte(awsV4Request))
}

type derivedKey struct {
	date string
	key  []byte
}

// derivedKeyCache memoizes signing keys per credential scope. A key is
// valid for one scope day, so entries are indexed without the date and
// overwritten when it changes; the map never grows past the number of
// distinct access-key/region/service combinations in use.
type derivedKeyCache struct {
	mu     sync.Mutex
	values map[string]derivedKey
}

func newDerivedKeyCache() *derivedKeyCache {
	return &derivedKeyCache{
		values: make(map[string]derivedKey),
	}
}

func (c *derivedKeyCache) Get(creds Credentials, region, service string, tm Time) []byte {
	date := tm.ShortFormat()
	id := creds.AccessKey + "/" + region + "/" + service

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.values[id]; ok && e.date == date {
		return e.key
	}
	k := deriveKey(creds.SecretKey, date, region, service)
	c.values[id] = derivedKey{date: date, key: k}
	return k
}
