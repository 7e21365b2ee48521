package config

import (
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	Simfile           = kingpin.Arg("simfile", "Path to the simfile or song directory to modify").String()
	DryRun            = kingpin.Flag("dry-run", "Preview changes without writing the file").Short('d').Bool()
	AllowSplitTiming  = kingpin.Flag("allow-split-timing", "If necessary, create split timing for charts to avoid interfering with other charts").Bool()
	AllowSimultaneous = kingpin.Flag("allow-simultaneous", "Leave mines that occur on the same beat as notes alone").Bool()
	IgnoreSM          = kingpin.Flag("ignore-sm", "Do not warn when an SM file is present alongside the SSC file").Bool()
	Scroll            = kingpin.Flag("scroll", "Normalize scroll rates instead of adding fake regions").Bool()
	Listen            = kingpin.Flag("listen", "Serve the upload front end on this address instead of running once").Short('l').String()
	Database          = kingpin.Flag("db", "Path to the run history database").Default("./minefix.db").String()
)

func Parse() {
	kingpin.Version("0.1.0")
	kingpin.Parse()
}
