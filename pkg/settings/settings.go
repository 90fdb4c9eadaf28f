// Package settings holds build metadata and the per-invocation settings of
// the jptr CLI, plus helpers to carry them through a context.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "jptr"

// StdinPath names standard input where a file path is expected.
const StdinPath = "-"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds the commit hash, version and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Input describes where the document comes from.
type Input struct {
	Path      string
	FromStdin bool
}

// Run holds the settings for a single execution: logging, input, and how
// results are printed.
type Run struct {
	MinLogLevel         int8
	Input               Input
	OutputFormat        string
	Indent              int
	LiteralBlockStrings bool
	NoColor             bool
	ExitOnError         bool
}

// NewCliParams returns the settings used before flags and config are applied.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel:  0,
		OutputFormat: "json",
		Indent:       2,
		NoColor:      false,
		ExitOnError:  true,
	}
}

// Label names the input for messages: the file path, or "stdin".
func (i Input) Label() string {
	if i.FromStdin || i.Path == "" || i.Path == StdinPath {
		return "stdin"
	}
	return i.Path
}
