// Package cmdtree is a general-purpose command framework: it lets a host
// application declare structured commands over a shared prefix tree, match
// free-form textual input against them, extract typed arguments, and
// dispatch to user-supplied handlers.
//
// The host supplies a Sender (the actor invoking a command) as an opaque
// value; cmdtree never inspects it beyond the type checks a command itself
// requests. Four subsystems do the work: the command tree (tree.go), the
// execution engine (execute.go), the flag parser (flag.go) and the
// suggestion engine (suggest.go). Everything else — leaf value parsers,
// help rendering, platform completion bridges — is a collaborator the host
// supplies or composes from the cmdtree/values and cmdtree/completion
// subpackages.
package cmdtree
