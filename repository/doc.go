// Package repository is the package that defines the contract of the remote graph store.
// A graph store is reachable only through discrete calls: secondary index lookups,
// raw node and relationship writes, incident relationship enumeration, a parameterized
// pattern query executor and a multi-operation batch submission.
// The implementations are located in the subpackages.
package repository
