// Package files provides file system discovery for the thermal
// experiment data corpus.
//
// Discovery locates the per-sensor raw CSV files inside a period folder
// and the period folders inside the corpus root. All lookups are
// relative to a base path to keep the pipeline portable.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/path/to/data_cleaned")
//
//	// List period folders
//	periods, err := discovery.ListDirectories(".")
//
//	// Find sensor files of one period
//	csvFiles, err := discovery.FindCSVFiles("Period1")
package files
