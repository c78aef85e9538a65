// Package files locates and organizes raw source files.
//
// Discovery lists the spreadsheets of a directory in lexicographic order,
// which is the order the pipeline processes them in.
//
// Organizer classifies files dropped into the raw root by filename keywords
// and moves them into the inbound, outbound and exchange directories.
//
// Example usage:
//
//	discovery := files.NewDiscovery(rawDir)
//	found, err := discovery.FindDataFiles("inbound")
//
//	organizer := files.NewOrganizer(rawDir, targets, logger)
//	result, err := organizer.Organize()
package files
