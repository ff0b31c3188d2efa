// Package record handles parsing of CDF internal records.
//
// A CDF file is a set of internal records linked by file offsets. Every
// record begins with its size and a record type. This package parses the
// records needed to resolve attributes and variable names:
//
//   - CDR (type 1): CDF descriptor record; version, encoding, flags. See [CDR].
//   - GDR (type 2): global descriptor record; list heads and counts. See [GDR].
//   - rVDR / zVDR (types 3, 8): variable descriptor records. See [VDR].
//   - ADR (type 4): attribute descriptor record; scope and entry counts. See [ADR].
//   - AgrEDR / AzEDR (types 5, 9): attribute entry descriptor records
//     carrying one entry value each. See [AEDR].
//   - CCR / CPR (types 10, 11): compressed file payload and its parameters.
//
// # Versions
//
// Files written by CDF 3.x use 8-byte offsets and 256-character names;
// CDF 2.x files use 4-byte offsets and 64-character names. [ReadMagic]
// determines which layout applies.
//
// # Linked Lists
//
// ADRs, VDRs and AEDRs form singly linked lists terminated by offset 0.
// Traversal refuses to visit an offset twice, so a corrupt file cannot
// loop forever.
//
// # Writing
//
// [Write*] functions serialize the same records. They exist to build
// files in memory for tests; see package cdfbuild.
package record
