// Package restat converts chat statistics exports into normalized JSON
// datasets: per-user metadata, message events, and command events.
//
// Quick start:
//
//	rep, err := restat.Run(ctx,
//	    restat.WithChannels("1033929807"),
//	    restat.WithDir("exports/"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("kept %d of %d records\n", rep.Kept, rep.Scanned)
//
// Each call performs one full conversion: inputs are discovered, filtered
// against the channel allow-list, and the analyse_*.json files are written
// into the output directory. Nothing persists between calls beyond those
// files.
package restat
