// Package orm contains the graph operation engine. It translates the schema level node and
// relationship operations into the sequences of the remote graph store calls.
//
// Each logical operation is a sequential flow of the store calls where every step observes
// the completed effects of the previous ones. The independent reads are executed concurrently.
package orm
