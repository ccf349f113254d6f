// Package patch edits KDL documents with JSON patches.
//
// Patches operate on the JSON form of a document from package ir:
//
//	{"nodes": [{"name": "server", "args": ["alpha"], "props": {"port": 8080}}]}
//
// so that
//
//	[{"op": "replace", "path": "/nodes/0/props/port", "value": 9090}]
//
// changes the port of the first node. The library behind both kinds of
// patch decodes objects into Go maps, so properties come back sorted by
// key.
package patch
