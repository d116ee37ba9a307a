package automock

import (
	"fmt"
	"strings"
)

// Status is a diagnostic tool that returns a string describing the container: the
// constructor that was selected, every parameter with where its value comes from, and
// whether the service has been constructed yet.
func (c *core[S]) Status() string {
	result := strings.Builder{}
	fmt.Fprintf(&result, "%v - constructor: %s %s", c.desc.Target, c.desc.name, formatSignature(c.desc.fn.Type()))
	for _, r := range c.resolved {
		fmt.Fprintf(&result, "\n  %s %v - %s", r.Param.Name, r.Param.Type, r.Source)
		if r.Handle != nil {
			fmt.Fprintf(&result, " (%T)", r.Handle.control)
		}
	}
	switch {
	case !c.constructed:
		result.WriteString("\nservice: not constructed")
	case c.serviceErr != nil:
		fmt.Fprintf(&result, "\nservice: construction failed: %v", c.serviceErr)
	default:
		result.WriteString("\nservice: constructed")
	}
	return result.String()
}
