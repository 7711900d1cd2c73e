// Package view derives the visible rows from a snapshot of listeners:
// filter first, then a stable sort on one of a fixed set of keys.
package view

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sunydepalpur/reaper/pkg/model"
)

// SortKey selects the column rows are ordered by.
type SortKey int

const (
	SortByPID SortKey = iota
	SortByName
	SortByPort
	SortByProtocol
	SortByAddress
	SortByState
)

// SortKeys is the cycle order for `s` and the shortcut order for keys 1-6.
var SortKeys = []SortKey{
	SortByPID,
	SortByName,
	SortByPort,
	SortByProtocol,
	SortByAddress,
	SortByState,
}

var sortKeyNames = map[SortKey]string{
	SortByPID:      "PID",
	SortByName:     "Name",
	SortByPort:     "Port",
	SortByProtocol: "Proto",
	SortByAddress:  "Address",
	SortByState:    "State",
}

func (k SortKey) String() string {
	if name, ok := sortKeyNames[k]; ok {
		return name
	}
	return "SortKey(" + strconv.Itoa(int(k)) + ")"
}

// Next returns the key after k in SortKeys, wrapping around.
func (k SortKey) Next() SortKey {
	return SortKeys[(k.index()+1)%len(SortKeys)]
}

func (k SortKey) index() int {
	for i, key := range SortKeys {
		if key == k {
			return i
		}
	}
	return 0
}

// SortKeyForShortcut maps '1'..'6' to a key.
func SortKeyForShortcut(r rune) (SortKey, bool) {
	i := int(r - '1')
	if i < 0 || i >= len(SortKeys) {
		return 0, false
	}
	return SortKeys[i], true
}

// Matches reports whether filter is a case-insensitive substring of the
// listener's process name, address or port. An empty filter matches everything.
func Matches(l model.Listener, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack(l)), strings.ToLower(filter))
}

// haystack fields are joined with a separator no user types, so a filter
// cannot match across two fields.
func haystack(l model.Listener) string {
	return l.Process + "\x00" + l.Address + "\x00" + strconv.Itoa(l.Port)
}

// Compute returns the listeners that match filter, ordered by key ascending.
// Ties are broken by pid; rows equal on both keep their input order.
// The input slice is not modified.
func Compute(listeners []model.Listener, filter string, key SortKey) []model.Listener {
	out := make([]model.Listener, 0, len(listeners))
	for _, l := range listeners {
		if Matches(l, filter) {
			out = append(out, l)
		}
	}
	cmp := comparator(key)
	sort.SliceStable(out, func(i, j int) bool {
		if c := cmp(out[i], out[j]); c != 0 {
			return c < 0
		}
		return out[i].PID < out[j].PID
	})
	return out
}

func comparator(key SortKey) func(a, b model.Listener) int {
	switch key {
	case SortByName:
		return func(a, b model.Listener) int { return compareFold(a.Process, b.Process) }
	case SortByPort:
		return func(a, b model.Listener) int { return compareInt(a.Port, b.Port) }
	case SortByProtocol:
		return func(a, b model.Listener) int { return compareFold(a.Protocol.String(), b.Protocol.String()) }
	case SortByAddress:
		return func(a, b model.Listener) int { return compareFold(a.Address, b.Address) }
	case SortByState:
		return func(a, b model.Listener) int { return compareFold(a.State.String(), b.State.String()) }
	}
	return func(a, b model.Listener) int { return compareInt(a.PID, b.PID) }
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
