// Package buildinfo reports which bookrack build is running.
//
// Release builds stamp Version, Commit and Date with
//
//	-ldflags "-X github.com/matzehuels/bookrack/pkg/buildinfo.Version=v0.3.0 ..."
//
// Binaries built with go install fall back to the module version and VCS
// revision the toolchain embeds.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/matzehuels/bookrack/pkg/render"
)

// Name is the binary name shown in version output.
const Name = "bookrack"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the resolved build description.
type Info struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
	// Converter is true when rsvg-convert is on PATH, which PDF export needs.
	Converter bool
}

// Read resolves Info, preferring ldflags values over embedded module data.
func Read() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Converter: render.ConverterAvailable(),
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && info.Commit == "none":
			info.Commit = s.Value[:min(12, len(s.Value))]
		case s.Key == "vcs.time" && info.Date == "unknown":
			info.Date = s.Value
		}
	}
	return info
}

func (i Info) String() string {
	pdf := "rsvg-convert found"
	if !i.Converter {
		pdf = "rsvg-convert missing, pdf export disabled"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Name, i.Version)
	fmt.Fprintf(&b, "commit: %s\n", i.Commit)
	fmt.Fprintf(&b, "built:  %s (%s)\n", i.Date, i.GoVersion)
	fmt.Fprintf(&b, "pdf:    %s\n", pdf)
	return b.String()
}

// Template is the cobra version template. It is static text, so any
// template delimiters in the build strings are escaped.
func Template() string {
	s := Read().String()
	s = strings.ReplaceAll(s, "{{", `{{"{{"}}`)
	return s
}
