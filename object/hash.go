package object

import (
	"hash/fnv"
	"sort"
	"strconv"
	"strings"

	"src.elv.sh/pkg/persistent/hashmap"
)

func keysEqual(a, b any) bool {
	return a == b
}

func hashKey(k any) uint32 {
	h := fnv.New32a()
	h.Write([]byte(k.(string)))
	return h.Sum32()
}

var emptyMap = hashmap.New(keysEqual, hashKey)

// Hash is the script language's one composite type, a string-keyed
// map of values. Reading an absent key gives the empty string, as in
// awk; there is never a key error.
type Hash struct {
	store hashmap.Map
}

func NewHash() *Hash {
	return &Hash{store: emptyMap}
}

func (h *Hash) Type() ObjectType { return HASH_OBJ }

func (h *Hash) Get(key string) Object {
	v, ok := h.store.Index(key)
	if !ok {
		return EMPTY_STRING
	}
	return v.(Object)
}

func (h *Hash) Has(key string) bool {
	_, ok := h.store.Index(key)
	return ok
}

func (h *Hash) Set(key string, value Object) {
	h.store = h.store.Assoc(key, value)
}

func (h *Hash) Len() int {
	return h.store.Len()
}

// KeyLess compares two keys the way the language enumerates them: in
// numeric order when both parse as integers, lexically otherwise. A
// mixed key set gets a total but not especially meaningful order,
// which scripts have come to depend on.
func KeyLess(a, b string) bool {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return ai < bi
	}
	return a < b
}

func (h *Hash) Keys() []string {
	keys := make([]string, 0, h.store.Len())
	for it := h.store.Iterator(); it.HasElem(); it.Next() {
		k, _ := it.Elem()
		keys = append(keys, k.(string))
	}
	sort.Slice(keys, func(i, j int) bool { return KeyLess(keys[i], keys[j]) })
	return keys
}

// KeysSortedByValue orders the keys by their values, stably, so that
// keys with equal values keep their key order.
func (h *Hash) KeysSortedByValue() []string {
	keys := h.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		return Compare(h.Get(keys[i]), h.Get(keys[j])) < 0
	})
	return keys
}

// sequential reports whether the keys are exactly "1" .. "N", in
// which case the hashmap stringifies as a list.
func (h *Hash) sequential() bool {
	n := h.store.Len()
	if n == 0 {
		return false
	}
	for i := 1; i <= n; i++ {
		if _, ok := h.store.Index(strconv.Itoa(i)); !ok {
			return false
		}
	}
	return true
}

// entryText is how a value looks inside a stringified hashmap:
// numbers, strings and nested hashmaps are bare, everything else is
// quoted.
func entryText(o Object) string {
	switch o.Type() {
	case NUMBER_OBJ, STRING_OBJ, HASH_OBJ:
		return o.Inspect(ViewStdOut)
	}
	return "\"" + o.Inspect(ViewStdOut) + "\""
}

func (h *Hash) Inspect(view View) string {
	var sb strings.Builder
	if h.sequential() {
		sb.WriteByte('[')
		for i := 1; i <= h.store.Len(); i++ {
			if i > 1 {
				sb.WriteString(", ")
			}
			sb.WriteString(entryText(h.Get(strconv.Itoa(i))))
		}
		sb.WriteByte(']')
		return sb.String()
	}
	sb.WriteByte('{')
	for i, k := range h.Keys() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("\"" + k + "\": ")
		sb.WriteString(entryText(h.Get(k)))
	}
	sb.WriteByte('}')
	return sb.String()
}
