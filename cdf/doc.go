// Package cdf resolves attributes of CDF (Common Data Format) files.
//
// CDF attributes are sparse collections of entries indexed by entry
// number. Entries of one attribute may hold different data types. This
// package reconstructs which entries exist and presents their values
// without coercing incompatible types:
//
//   - [Attribute.BuildMask] reports which entry numbers hold a value.
//   - [Attribute.Aggregate] folds entry values into an [AggregatedValue]:
//     absent, a scalar, a homogeneous array, or a mixed collection.
//   - [Attribute.ParseGlobal] resolves a global attribute and caches its value.
//   - [Attribute.ParseVariable] looks up the entry an attribute holds for
//     one variable.
//
// # Sessions
//
// A [File] is opened with [Open] or [OpenReader]. Any other source of
// attribute entries can be wrapped with [NewSession] by implementing
// [EntryProber]. Descriptors returned by a File borrow it: after
// [File.Close] every operation fails with [ErrClosed].
//
// Neither File nor Attribute is safe for concurrent use.
//
// # Diagnostics
//
// Archives often declare entry counts that disagree with the entries they
// contain. Such disagreements do not fail an operation; the observed
// entries are used and a [Diagnostic] is returned next to the result and
// logged at warning level.
package cdf
