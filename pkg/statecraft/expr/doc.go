/*
Package expr compiles boolean conditions evaluated against state snapshots.

# Overview

Controller manifests declare command visibility as text. A condition is
compiled once when the manifest is loaded and evaluated on every
availability check:

	cond, err := expr.Compile("landed == true and fuel > 10")
	cond.Eval(map[string]any{"landed": true, "fuel": 40}) // true

# Syntax

	<or>         := <and> { ('or' | '||') <and> }
	<and>        := <not> { ('and' | '&&') <not> }
	<not>        := ('not' | '!') <not> | <comparison>
	<comparison> := <operand> [ <op> <operand> ]
	<op>         := '==' | '!=' | '<' | '>' | '<=' | '>=' | 'contains' | custom
	<operand>    := '(' <or> ')' | 'string' | "string" | number
	              | true | false | null | nil | path

A path is a dotted identifier (aircraft.status) looked up through nested
maps. Unknown paths resolve to nil.

# Comparison

== and != compare numbers numerically and everything else by formatted
value. Ordering operators are numeric. contains tests substring membership
for strings and element membership for slices.

# Truthiness

  - nil: false
  - bool: the boolean value
  - string: false if empty
  - numbers: false if zero
  - slices and maps: false if empty
  - other values: true
*/
package expr
