package debugs

import (
	"fmt"

	"github.com/reusee/zendapi/bridge"
	"github.com/reusee/zendapi/zend"
	"go.starlark.net/starlark"
)

// zvalToStarlark converts a host value. Arrays become dicts keeping
// insertion order, objects become dicts with a "__class__" entry.
func zvalToStarlark(z *zend.Zval, seen map[zend.Refcounted]bool) starlark.Value {
	z = z.Deref()
	switch z.Type() {

	case zend.TypeUndef, zend.TypeNull:
		return starlark.None
	case zend.TypeFalse:
		return starlark.False
	case zend.TypeTrue:
		return starlark.True
	case zend.TypeLong:
		return starlark.MakeInt64(z.Long())
	case zend.TypeDouble:
		return starlark.Float(z.Double())
	case zend.TypeString:
		return starlark.String(z.Str().Val())

	case zend.TypeArray:
		ht := z.Array()
		if seen[ht] {
			return starlark.String("*RECURSION*")
		}
		seen[ht] = true
		defer delete(seen, ht)
		return tableToStarlark(ht, seen, nil)

	case zend.TypeObject:
		obj := z.Object()
		if seen[obj] {
			return starlark.String("*RECURSION*")
		}
		seen[obj] = true
		defer delete(seen, obj)
		return tableToStarlark(obj.Properties(), seen, func(d *starlark.Dict) {
			d.SetKey(starlark.String("__class__"), starlark.String(obj.Class().Name()))
		})

	case zend.TypeResource:
		r := z.Resource()
		return starlark.String(fmt.Sprintf("resource(%d) of type (%s)", r.Handle(), r.TypeName()))

	}
	return starlark.None
}

func tableToStarlark(ht *zend.HashTable, seen map[zend.Refcounted]bool, init func(*starlark.Dict)) *starlark.Dict {
	d := starlark.NewDict(ht.Count())
	if init != nil {
		init(d)
	}
	for pos := range ht.NumUsed() {
		bucket := ht.Bucket(pos)
		value := bucket.Val.Deref()
		if value.IsUndef() {
			continue
		}
		var key starlark.Value
		if bucket.Key != nil {
			key = starlark.String(bucket.Key.Val())
		} else {
			key = starlark.MakeInt64(bucket.H)
		}
		d.SetKey(key, zvalToStarlark(value, seen))
	}
	return d
}

// fromStarlark builds an owning host value.
func fromStarlark(v starlark.Value) (*bridge.Variant, error) {
	switch v := v.(type) {

	case starlark.NoneType:
		return bridge.NewNull(), nil
	case starlark.Bool:
		return bridge.NewBool(bool(v)), nil
	case starlark.Int:
		i, ok := v.Int64()
		if !ok {
			return nil, fmt.Errorf("int out of range: %s", v)
		}
		return bridge.NewInt(i), nil
	case starlark.Float:
		return bridge.NewFloat(float64(v)), nil
	case starlark.String:
		return bridge.NewString(string(v)), nil
	case starlark.Bytes:
		return bridge.NewBytes([]byte(v)), nil

	case starlark.Indexable:
		arr := bridge.NewArray()
		for i := range v.Len() {
			elem, err := fromStarlark(v.Index(i))
			if err != nil {
				arr.Release()
				return nil, err
			}
			arr.Append(elem)
			elem.Release()
		}
		return &arr.Variant, nil

	case *starlark.Dict:
		arr := bridge.NewArray()
		for _, item := range v.Items() {
			elem, err := fromStarlark(item[1])
			if err != nil {
				arr.Release()
				return nil, err
			}
			switch k := item[0].(type) {
			case starlark.String:
				arr.Set(string(k), elem)
			case starlark.Int:
				i, ok := k.Int64()
				if !ok {
					elem.Release()
					arr.Release()
					return nil, fmt.Errorf("key out of range: %s", k)
				}
				arr.SetIndex(i, elem)
			default:
				elem.Release()
				arr.Release()
				return nil, fmt.Errorf("unsupported key type: %s", k.Type())
			}
			elem.Release()
		}
		return &arr.Variant, nil

	}
	return nil, fmt.Errorf("unsupported starlark value: %s", v.Type())
}
