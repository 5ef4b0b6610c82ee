package switchback

import "sort"

type Key string

const (
	// IpAddrKey stashes the IP address of an HTTP request being handled by switchback.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "switchback context key: " + string(k)
}

// A ByKey is a sortable collection of Keys.
type ByKey []Key

var _ sort.Interface = ByKey([]Key{})

func (k ByKey) Len() int           { return len(k) }
func (k ByKey) Swap(i, j int)      { k[i], k[j] = k[j], k[i] }
func (k ByKey) Less(i, j int) bool { return k[i] < k[j] }

// UniqueSort sorts the ByKey and removes any duplicated or zero-value Keys.
func (k ByKey) UniqueSort() ByKey {
	uniq := make(map[Key]struct{}, len(k))
	next := make(ByKey, 0, len(k))
	for _, key := range k {
		if key == "" {
			continue
		}

		if _, ok := uniq[key]; ok {
			continue
		}

		uniq[key] = struct{}{}
		next = append(next, key)
	}

	sort.Sort(next)
	return next
}
