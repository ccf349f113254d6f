package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Lex    bool
	Parse  bool
	Encode bool
	Auto   bool
	Match  bool
	Patch  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Lex = boolEnv("KDL_DEBUG_LEX")
	d.Parse = boolEnv("KDL_DEBUG_PARSE")
	d.Encode = boolEnv("KDL_DEBUG_ENCODE")
	d.Auto = boolEnv("KDL_DEBUG_AUTO")
	d.Match = boolEnv("KDL_DEBUG_MATCH")
	d.Patch = boolEnv("KDL_DEBUG_PATCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Lex() bool {
	return d.Lex
}
func Parse() bool {
	return d.Parse
}
func Encode() bool {
	return d.Encode
}

// Auto reports whether version detection is traced.
func Auto() bool {
	return d.Auto
}

func Match() bool {
	return d.Match
}
func Patch() bool {
	return d.Patch
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
	os.Stderr.Write([]byte{'\n'})
}
