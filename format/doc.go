// Package format names the KDL syntax versions and the output
// representations understood by the tools in this module.
//
// # Related Packages
//
//   - github.com/signadot/go-kdl/parse - Parse text to IR
//   - github.com/signadot/go-kdl/encode - Encode IR to text
package format
