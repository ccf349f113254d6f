package debug

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/signadot/go-kdl/ir"
)

// Logf writes a message to stderr. Documents, nodes and values among
// args are rendered in their JSON form.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch a.(type) {
		case *ir.Document, *ir.Node, *ir.Value, map[string]any, []any:
			d, err := json.Marshal(a)
			if err != nil {
				args[i] = fmt.Sprintf("[raw %T] %v", a, a)
				continue
			}
			args[i] = string(d)
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
