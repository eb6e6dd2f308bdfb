package output

// Options controls what a sent exchange prints and where a downloaded body
// goes. The Print* fields follow the letters of --print: H and B for the
// request, h and b for the response.
type Options struct {
	PrintRequestHeader  bool
	PrintRequestBody    bool
	PrintResponseHeader bool
	PrintResponseBody   bool

	// EnableFormat selects the pretty printer for the form and for bodies.
	EnableFormat bool
	EnableColor  bool

	// Download writes the response body to OutputFile, or to a file named
	// after the URL, instead of printing it.
	Download   bool
	OutputFile string
	Overwrite  bool
}
