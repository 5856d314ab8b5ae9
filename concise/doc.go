// Package concise implements CONCISE (COmpressed 'N' Composable Integer
// SEt), a word-aligned run-length-encoded bitmap over non-negative
// integers. Each 32-bit word is either a literal (31 membership bits) or a
// sequence describing a run of uniform 31-bit blocks, optionally with a
// single flipped bit in the run's first block. Setting simulateWAH on a Set
// disables the flip extension, giving strict WAH semantics instead.
package concise
