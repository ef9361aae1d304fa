// Package forms implements the reactive form model the validation message
// components observe: leaf controls holding a value, name-indexed groups and
// order-indexed arrays of controls.
//
// Every control runs its validators whenever its value changes and records the
// result as an ordered Errors mapping. The order is the order in which the
// validators reported their failures, which is what the message components rely
// on to pick a single failure per control. Each control exposes a status-change
// stream that emits after every validity update.
//
// Controls are not safe for concurrent mutation; a form tree belongs to a
// single goroutine at a time, matching how a request handler or an interactive
// session owns its form.
package forms
