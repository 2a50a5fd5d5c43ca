// Package app carries output preferences between cmd/'s cobra commands and
// the operations they run, the way the teacher threads a Context through
// its application layer instead of passing verbose/quiet as loose
// parameters.
package app

// Context holds the output preferences cmd/root.go's persistent flags
// populate: whether to print extra diagnostics, whether to suppress
// everything but errors, and which format (table/json) a command should
// render its result in.
type Context struct {
	OutputFormat string
	Verbose      bool
	Quiet        bool
}

// NewContext returns a Context with table output and default verbosity.
func NewContext() *Context {
	return &Context{OutputFormat: "table"}
}

// Log prints message when verbose diagnostics are requested and not
// suppressed by Quiet.
func (c *Context) Log(message string) {
	if !c.Quiet && c.Verbose {
		println(message)
	}
}

// Error prints an error-prefixed message unless Quiet is set.
func (c *Context) Error(message string) {
	if !c.Quiet {
		println("Error:", message)
	}
}
