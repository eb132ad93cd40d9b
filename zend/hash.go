package zend

import (
	"math"
	"strconv"
)

const minTableSize = 8

// Bucket is one slot of a hash table. Key is nil for integer keys, in which
// case H holds the index. A deleted slot keeps its position with an undef Val.
type Bucket struct {
	Val Zval
	H   int64
	Key *String
}

type hashKey struct {
	str   string
	h     int64
	isStr bool
}

// HashTable is the insertion-ordered map backing array values.
//
// Slots are appended in insertion order; deleting marks the slot undef
// instead of moving later slots, so positions stay stable until the table
// is compacted on growth.
type HashTable struct {
	RefHeader
	data     []Bucket
	count    int
	nextFree int64
	index    map[hashKey]int
}

func NewHashTable(size int) *HashTable {
	size = max(size, minTableSize)
	return &HashTable{
		RefHeader: RefHeader{
			refcount: 1,
		},
		data:  make([]Bucket, 0, size),
		index: make(map[hashKey]int, size),
	}
}

// Count returns the number of live entries.
func (t *HashTable) Count() int {
	return t.count
}

// NumUsed returns the number of raw slots, tombstones included.
func (t *HashTable) NumUsed() int {
	return len(t.data)
}

func (t *HashTable) NextFreeElement() int64 {
	return t.nextFree
}

// Bucket returns the raw slot at pos. The pointer is invalidated by any
// insertion into the table.
func (t *HashTable) Bucket(pos int) *Bucket {
	if pos < 0 || pos >= len(t.data) {
		return nil
	}
	return &t.data[pos]
}

func (t *HashTable) find(k hashKey) *Zval {
	t.checkLive("array")
	pos, ok := t.index[k]
	if !ok {
		return nil
	}
	return &t.data[pos].Val
}

func (t *HashTable) IndexFind(h int64) *Zval {
	return t.find(hashKey{h: h})
}

// Find looks up a string key verbatim.
func (t *HashTable) Find(key string) *Zval {
	return t.find(hashKey{str: key, isStr: true})
}

// SymtableFind looks up key, treating canonical numeric strings as integers.
func (t *HashTable) SymtableFind(key string) *Zval {
	return t.find(symtableKey(key))
}

func (t *HashTable) IndexExists(h int64) bool {
	return t.IndexFind(h) != nil
}

func (t *HashTable) Exists(key string) bool {
	return t.Find(key) != nil
}

func (t *HashTable) SymtableExists(key string) bool {
	return t.SymtableFind(key) != nil
}

// update stores v under k, taking over the reference v holds. An existing
// value is replaced in place and released.
func (t *HashTable) update(k hashKey, v *Zval) *Zval {
	t.checkLive("array")
	if pos, ok := t.index[k]; ok {
		slot := &t.data[pos].Val
		old := *slot
		*slot = *v
		PtrDtor(&old)
		return slot
	}
	return t.insert(k, v)
}

func (t *HashTable) insert(k hashKey, v *Zval) *Zval {
	if len(t.data) == cap(t.data) {
		t.grow()
	}
	bucket := Bucket{
		Val: *v,
	}
	if k.isStr {
		bucket.Key = InternedString(k.str)
	} else {
		bucket.H = k.h
		if k.h >= t.nextFree {
			if k.h < math.MaxInt64 {
				t.nextFree = k.h + 1
			} else {
				t.nextFree = math.MaxInt64
			}
		}
	}
	t.data = append(t.data, bucket)
	pos := len(t.data) - 1
	t.index[k] = pos
	t.count++
	return &t.data[pos].Val
}

// grow compacts tombstones away when they are worth reclaiming, otherwise
// doubles the capacity.
func (t *HashTable) grow() {
	if len(t.data) > t.count+(t.count>>5) {
		t.rehash()
		return
	}
	data := make([]Bucket, len(t.data), max(cap(t.data)*2, minTableSize))
	copy(data, t.data)
	t.data = data
}

func (t *HashTable) rehash() {
	data := t.data[:0]
	for _, bucket := range t.data {
		if bucket.Val.typ == TypeUndef {
			continue
		}
		data = append(data, bucket)
	}
	clear(t.data[len(data):])
	t.data = data
	clear(t.index)
	for pos, bucket := range t.data {
		t.index[bucketKey(&bucket)] = pos
	}
}

func (t *HashTable) IndexUpdate(h int64, v *Zval) *Zval {
	return t.update(hashKey{h: h}, v)
}

func (t *HashTable) Update(key string, v *Zval) *Zval {
	return t.update(hashKey{str: key, isStr: true}, v)
}

func (t *HashTable) SymtableUpdate(key string, v *Zval) *Zval {
	return t.update(symtableKey(key), v)
}

// NextIndexInsert appends v under the next free integer key. It fails when
// that key is already taken, which only happens once the key space is used up.
func (t *HashTable) NextIndexInsert(v *Zval) (*Zval, bool) {
	t.checkLive("array")
	k := hashKey{h: t.nextFree}
	if _, ok := t.index[k]; ok {
		return nil, false
	}
	return t.insert(k, v), true
}

func (t *HashTable) del(k hashKey) bool {
	t.checkLive("array")
	pos, ok := t.index[k]
	if !ok {
		return false
	}
	delete(t.index, k)
	slot := &t.data[pos].Val
	old := *slot
	slot.SetUndef()
	t.count--
	if pos == len(t.data)-1 {
		n := len(t.data) - 1
		for n > 0 && t.data[n-1].Val.typ == TypeUndef {
			n--
		}
		clear(t.data[n:])
		t.data = t.data[:n]
	}
	PtrDtor(&old)
	return true
}

func (t *HashTable) IndexDel(h int64) bool {
	return t.del(hashKey{h: h})
}

func (t *HashTable) Del(key string) bool {
	return t.del(hashKey{str: key, isStr: true})
}

func (t *HashTable) SymtableDel(key string) bool {
	return t.del(symtableKey(key))
}

// Clean releases every entry and resets the table to empty.
func (t *HashTable) Clean() {
	t.checkLive("array")
	data := t.data
	t.data = t.data[:0]
	t.count = 0
	t.nextFree = 0
	clear(t.index)
	for i := range data {
		PtrDtor(&data[i].Val)
	}
	clear(data)
}

func (t *HashTable) destroy() {
	t.freed = true
	data := t.data
	t.data = nil
	t.index = nil
	t.count = 0
	for i := range data {
		PtrDtor(&data[i].Val)
	}
}

// Dup returns a new table with the same entries in the same order. Nested
// arrays are duplicated too; other payloads are shared.
func (t *HashTable) Dup() *HashTable {
	dup := NewHashTable(t.count)
	for pos := range t.data {
		bucket := &t.data[pos]
		if bucket.Val.typ == TypeUndef {
			continue
		}
		var value Zval
		dupValue(&value, &bucket.Val)
		dup.insert(bucketKey(bucket), &value)
	}
	dup.nextFree = t.nextFree
	return dup
}

// dupValue stores in dst a copy of src that shares no array with it.
func dupValue(dst, src *Zval) {
	if src.typ == TypeArray {
		dst.SetArray(src.Array().Dup())
		return
	}
	Copy(dst, src)
}

func bucketKey(b *Bucket) hashKey {
	if b.Key != nil {
		return hashKey{str: b.Key.val, isStr: true}
	}
	return hashKey{h: b.H}
}

func symtableKey(key string) hashKey {
	if h, ok := HandleNumericStr(key); ok {
		return hashKey{h: h}
	}
	return hashKey{str: key, isStr: true}
}

// HandleNumericStr reports whether key is the canonical decimal form of an
// integer ("12", "-3", but not "012", "-0" or "1.0").
func HandleNumericStr(key string) (int64, bool) {
	if key == "" || len(key) > 20 {
		return 0, false
	}
	digits := key
	if digits[0] == '-' {
		digits = digits[1:]
		if digits == "" || digits == "0" {
			return 0, false
		}
	}
	if digits[0] == '0' && len(digits) > 1 {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	h, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return 0, false
	}
	return h, true
}
