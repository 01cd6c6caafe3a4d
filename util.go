package cmdtree

import "reflect"

// typeName returns a short diagnostic name for v's type, used by
// RequireSenderType to label a sender-type requirement.
func typeName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "any"
	}

	if t.Kind() == reflect.Ptr {
		return "*" + t.Elem().Name()
	}

	return t.Name()
}
