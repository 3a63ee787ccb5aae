// Package obj reads and writes builtins artifacts: msgpack-framed,
// content-addressed bundles of template declarations. A compilation loads
// one before lowering; gen-builtins and --emit-object produce them.
package obj
