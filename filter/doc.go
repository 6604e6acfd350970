// Package filter implements the ordered filter pipeline attached to a
// variable.
//
// A pipeline is a sequence of (filter id, parameters) entries. When a chunk is
// written the filters run in pipeline order; when it is read they run in
// reverse. Quantization is configured separately on the variable and always
// runs before the first filter.
//
// Built-in filters:
//
//	id     name        role            params
//	1      deflate     compression     [level 0-9], default 6
//	2      shuffle     preconditioner  [element size], default from type
//	3      fletcher32  checksum        none
//	32004  lz4         compression     none
//	32015  zstd        compression     [level 1-22], default 3
//	32769  s2          compression     none
//	32770  xxhash64    checksum        none
//
// Further filters can be added with Register.
package filter
