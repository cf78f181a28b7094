// Cutconf reads run-period calibration cuts from YAML documents.
//
// A calibration document groups cut values by run period, optionally
// refined per particle (pid) or detector sector. cutconf resolves a run
// number and probe to the matching value, falling back to a default when
// nothing matches.
//
// Usage:
//
//	# Look up the vertex cut for pid 11 in run 6143
//	cutconf lookup -f cuts.yaml --group cuts --dependent pid --run 6143 --probe 11 --array
//
//	# Read a top-level value
//	cutconf get -f cuts.yaml myInt --type int
//
//	# Check that every configured document parses
//	cutconf validate -c cutconf.yaml
//
//	# Serve lookups over HTTP, reloading on change
//	cutconf serve -c cutconf.yaml --watch
//
//	# Show version information
//	cutconf version
package main

func main() {
	Execute()
}
