package debugs

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/reusee/zendapi/bridge"
	"github.com/reusee/zendapi/zend"
	"gopkg.in/yaml.v3"
)

// DumpYAML writes v as a YAML document. Arrays with keys 0..n-1 become
// sequences, other arrays and objects become mappings in insertion order.
func DumpYAML(w io.Writer, v *bridge.Variant) error {
	node := zvalToYAML(v.Ptr(), make(map[zend.Refcounted]bool))
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(node); err != nil {
		return err
	}
	return encoder.Close()
}

func scalarNode(tag string, value string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   tag,
		Value: value,
	}
}

func zvalToYAML(z *zend.Zval, seen map[zend.Refcounted]bool) *yaml.Node {
	z = z.Deref()
	switch z.Type() {

	case zend.TypeFalse:
		return scalarNode("!!bool", "false")
	case zend.TypeTrue:
		return scalarNode("!!bool", "true")
	case zend.TypeLong:
		return scalarNode("!!int", strconv.FormatInt(z.Long(), 10))
	case zend.TypeDouble:
		f := z.Double()
		switch {
		case math.IsNaN(f):
			return scalarNode("!!float", ".nan")
		case math.IsInf(f, 1):
			return scalarNode("!!float", ".inf")
		case math.IsInf(f, -1):
			return scalarNode("!!float", "-.inf")
		}
		return scalarNode("!!float", strconv.FormatFloat(f, 'g', -1, 64))
	case zend.TypeString:
		return scalarNode("!!str", z.Str().Val())

	case zend.TypeArray:
		ht := z.Array()
		if seen[ht] {
			return scalarNode("!!str", "*RECURSION*")
		}
		seen[ht] = true
		defer delete(seen, ht)
		if isList(ht) {
			node := &yaml.Node{
				Kind: yaml.SequenceNode,
				Tag:  "!!seq",
			}
			for pos := range ht.NumUsed() {
				value := ht.Bucket(pos).Val.Deref()
				if value.IsUndef() {
					continue
				}
				node.Content = append(node.Content, zvalToYAML(value, seen))
			}
			return node
		}
		return tableToYAML(ht, seen, nil)

	case zend.TypeObject:
		obj := z.Object()
		if seen[obj] {
			return scalarNode("!!str", "*RECURSION*")
		}
		seen[obj] = true
		defer delete(seen, obj)
		return tableToYAML(obj.Properties(), seen, []*yaml.Node{
			scalarNode("!!str", "__class__"),
			scalarNode("!!str", obj.Class().Name()),
		})

	case zend.TypeResource:
		r := z.Resource()
		return scalarNode("!!str", fmt.Sprintf("resource(%d) of type (%s)", r.Handle(), r.TypeName()))

	}
	return scalarNode("!!null", "null")
}

func isList(ht *zend.HashTable) bool {
	var next int64
	for pos := range ht.NumUsed() {
		bucket := ht.Bucket(pos)
		if bucket.Val.Deref().IsUndef() {
			continue
		}
		if bucket.Key != nil || bucket.H != next {
			return false
		}
		next++
	}
	return true
}

func tableToYAML(ht *zend.HashTable, seen map[zend.Refcounted]bool, init []*yaml.Node) *yaml.Node {
	node := &yaml.Node{
		Kind:    yaml.MappingNode,
		Tag:     "!!map",
		Content: init,
	}
	for pos := range ht.NumUsed() {
		bucket := ht.Bucket(pos)
		value := bucket.Val.Deref()
		if value.IsUndef() {
			continue
		}
		var key *yaml.Node
		if bucket.Key != nil {
			key = scalarNode("!!str", bucket.Key.Val())
		} else {
			key = scalarNode("!!int", strconv.FormatInt(bucket.H, 10))
		}
		node.Content = append(node.Content, key, zvalToYAML(value, seen))
	}
	return node
}
