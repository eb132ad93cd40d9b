package zend

import (
	"fmt"
	"io"
	"strings"
)

// VarDump writes a human readable dump of z. level is the starting
// indentation level; nested values are indented two more per depth.
func VarDump(w io.Writer, z *Zval, level int) {
	d := &dumper{
		w:    w,
		seen: make(map[Refcounted]bool),
	}
	d.dump(z, level)
}

type dumper struct {
	w    io.Writer
	seen map[Refcounted]bool
}

func (d *dumper) printf(level int, format string, args ...any) {
	if level > 1 {
		io.WriteString(d.w, strings.Repeat(" ", level-1))
	}
	fmt.Fprintf(d.w, format, args...)
}

func (d *dumper) dump(z *Zval, level int) {
	z = z.Deref()
	switch z.Type() {

	case TypeUndef, TypeNull:
		d.printf(level, "NULL\n")
	case TypeFalse:
		d.printf(level, "bool(false)\n")
	case TypeTrue:
		d.printf(level, "bool(true)\n")
	case TypeLong:
		d.printf(level, "int(%d)\n", z.Long())
	case TypeDouble:
		d.printf(level, "float(%s)\n", FormatDouble(z.Double()))
	case TypeString:
		s := z.Str().Val()
		d.printf(level, "string(%d) \"%s\"\n", len(s), s)

	case TypeArray:
		ht := z.Array()
		if d.seen[ht] {
			d.printf(level, "*RECURSION*\n")
			return
		}
		d.seen[ht] = true
		defer delete(d.seen, ht)
		d.printf(level, "array(%d) {\n", ht.Count())
		d.elements(ht, level, false)
		d.printf(level, "}\n")

	case TypeObject:
		obj := z.Object()
		if d.seen[obj] {
			d.printf(level, "*RECURSION*\n")
			return
		}
		d.seen[obj] = true
		defer delete(d.seen, obj)
		props := obj.Properties()
		d.printf(level, "object(%s)#%d (%d) {\n", obj.Class().Name(), obj.Handle(), props.Count())
		d.elements(props, level, true)
		d.printf(level, "}\n")

	case TypeResource:
		r := z.Resource()
		d.printf(level, "resource(%d) of type (%s)\n", r.Handle(), r.TypeName())

	default:
		d.printf(level, "UNKNOWN:0\n")
	}
}

func (d *dumper) elements(ht *HashTable, level int, properties bool) {
	pad := strings.Repeat(" ", level+1)
	for pos := range ht.NumUsed() {
		bucket := ht.Bucket(pos)
		value := &bucket.Val
		if value.Type() == TypeIndirect {
			value = value.Indirect()
		}
		if value.IsUndef() {
			continue
		}
		switch {
		case bucket.Key != nil:
			fmt.Fprintf(d.w, "%s[\"%s\"]=>\n", pad, bucket.Key.Val())
		case properties:
			fmt.Fprintf(d.w, "%s[\"%d\"]=>\n", pad, bucket.H)
		default:
			fmt.Fprintf(d.w, "%s[%d]=>\n", pad, bucket.H)
		}
		d.dump(value, level+2)
	}
}
