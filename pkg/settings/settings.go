// Package settings provides build metadata, run settings and context
// helpers used across the kvfold CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "kvfold"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the settings of one invocation: where the document comes from,
// where logs go and how the frame is drawn.
type Run struct {
	MinLogLevel int8
	LogFile     string
	InputPath   string // "" when the document is read from stdin
	NoColor     bool
	Fullscreen  bool
}

// NewCliParams returns the defaults of a CLI run: info-level logging that
// is discarded, inline rendering and colors on.
func NewCliParams() *Run {
	return &Run{}
}

// FromStdin reports whether the document is read from standard input.
func (r *Run) FromStdin() bool {
	return r.InputPath == "" || r.InputPath == "-"
}
