package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// MaxFriends is the size of one friends/list page; a FriendSet never holds more.
const MaxFriends = 200

// ErrMissingEntity is returned when a query names an entity that was never collected.
var ErrMissingEntity = errors.New("entity missing from friend map")

// FriendSet is the ordered list of accounts one entity follows.
// A failed fetch is represented by an empty, non-nil FriendSet.
type FriendSet []string

// Distinct returns the friends with duplicates removed, keeping first occurrence order.
func (f FriendSet) Distinct() []string {
	seen := make(map[string]bool, len(f))
	out := make([]string, 0, len(f))
	for _, id := range f {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// EntityFriendMap maps each collected entity to its FriendSet.
// A missing key means the entity was never fetched.
type EntityFriendMap map[string]FriendSet

// Friends looks up the FriendSet for id. Absent entities are a logic error.
func (m EntityFriendMap) Friends(id string) (FriendSet, error) {
	fs, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingEntity, id)
	}
	return fs, nil
}

// Subset returns a new map holding only the entities in ids.
func (m EntityFriendMap) Subset(ids IDSet) EntityFriendMap {
	out := make(EntityFriendMap, ids.Len())
	for id, fs := range m {
		if ids.Has(id) {
			out[id] = fs
		}
	}
	return out
}

// Keys returns the entity identifiers in sorted order.
func (m EntityFriendMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FriendFrequency counts, per friend, how many distinct entities follow it.
type FriendFrequency map[string]int

// Get returns the count for friend, treating absent friends as zero.
func (f FriendFrequency) Get(friend string) int {
	return f[friend]
}

// EntityCount is an (identifier, count) row. It encodes as a two-element JSON array.
type EntityCount struct {
	ID    string
	Count int
}

func (c EntityCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{c.ID, c.Count})
}

func (c *EntityCount) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("expected [id, count] pair, got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &c.ID); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &c.Count)
}
