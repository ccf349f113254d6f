// Package convert moves KDL documents between KDL, JSON, YAML and
// s-expression text.
//
// Documents round trip through JSON and YAML in the JSON form of
// package ir. FromData instead reads arbitrary JSON or YAML data and
// lays it out as KDL nodes:
//
//	{"server": {"port": 8080, "hosts": ["a", "b"]}}
//
// becomes
//
//	server {
//	    port 8080
//	    hosts "a" "b"
//	}
package convert
