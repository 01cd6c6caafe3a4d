package cmdtree

// Permission is a caller-evaluated capability check: the library never
// interprets the string, it only asks the predicate whether a given sender
// may proceed past a node or flag.
//
// This is a small boolean-expression tree over an arbitrary Sender, not a
// struct/field validation concern, so it is implemented directly rather than
// through go-playground/validator (used elsewhere in this module for
// structural validation of builder input — see validate.go): a validator
// tag language has no natural way to express "sender A OR (sender B AND
// sender C)" over an opaque host type.
type Permission struct {
	name  string
	check func(sender any) bool
}

// NoPermission is the always-allowed permission; components/commands without
// an explicit Permission use this.
var NoPermission = Permission{name: "", check: func(any) bool { return true }}

// NewPermission wraps a predicate under a diagnostic name (surfaced in
// NoPermission failures).
func NewPermission(name string, check func(sender any) bool) Permission {
	if check == nil {
		check = func(any) bool { return true }
	}

	return Permission{name: name, check: check}
}

// Name returns the permission's diagnostic name.
func (p Permission) Name() string {
	return p.name
}

// Allows evaluates the predicate against sender. A zero-value Permission
// (no check installed) always allows.
func (p Permission) Allows(sender any) bool {
	if p.check == nil {
		return true
	}

	return p.check(sender)
}

// And combines p with other, allowing only when both do.
func (p Permission) And(other Permission) Permission {
	name := p.name + " & " + other.name

	return NewPermission(name, func(sender any) bool {
		return p.Allows(sender) && other.Allows(sender)
	})
}

// Or combines p with other, allowing when either does.
func (p Permission) Or(other Permission) Permission {
	name := p.name + " | " + other.name

	return NewPermission(name, func(sender any) bool {
		return p.Allows(sender) || other.Allows(sender)
	})
}

// RequireSenderType returns a Permission-shaped predicate family used for a
// command's required sender subtype check (spec §4.4 "sender-type
// enforcement"), via a generic type assertion over the opaque Sender.
func RequireSenderType[T any]() (name string, check func(sender any) bool) {
	var zero T

	name = typeName(zero)
	check = func(sender any) bool {
		_, ok := sender.(T)

		return ok
	}

	return name, check
}
