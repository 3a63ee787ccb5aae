// Package lower translates IR1 functions into template declarations: one
// declaration per function, base-case conditionals as pattern
// specializations, other conditionals through bool-dispatch helper
// declarations, and sequence/set primitives as runtime-contract
// instantiations. Error channels are threaded as an extra member binding on
// every declaration.
package lower
