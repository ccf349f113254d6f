// Package query selects KDL nodes with expr-lang expressions.
//
//	q, err := query.Compile(`name == "server" && (props.port ?? 0) > 8000`)
//	nodes, err := q.Select(doc)
//
// See Query for the variables and functions an expression can use.
package query
