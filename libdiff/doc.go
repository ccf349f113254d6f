// Package libdiff compares KDL documents.
//
// # Usage
//
//	changes := libdiff.Diff(oldDoc, newDoc)
//	err := encode.Encode(libdiff.ToDocument(changes), os.Stdout)
//
//	// undo
//	back := libdiff.Reverse(changes)
//
//	// line diff of two texts
//	text, differs := libdiff.Lines(encode.MustString(oldDoc), encode.MustString(newDoc))
//
// Diff aligns the nodes of each level with a sequence diff of their
// names, so a renamed node shows as a deletion and an insertion while an
// edited one shows as a modification.
package libdiff
