// Package compiler lowers a block composition tree into a flat SystemIR.
//
// Three referentially transparent passes, independently callable:
//
//   - FlattenBlocks collects atomic leaves depth-first, left to right. That
//     order is canonical: it becomes the block order of the SystemIR.
//   - ExtractWirings walks the tree emitting structural wirings: explicit
//     entries at sequential nodes, token-overlap auto-inferred connections
//     where no explicit wiring was authored, and feedback/temporal entries
//     tagged with their origin. Children's wirings are emitted before their
//     parent's.
//   - ExtractHierarchy rebuilds a simplified n-ary tree for inspection,
//     collapsing same-type sequential/parallel chains into single nodes.
//
// The compiler itself never fails over a well-formed tree; construction in
// internal/block already ruled out the structurally invalid cases. Mapper
// and emitter callbacks may fail, and those failures propagate unchanged.
package compiler
