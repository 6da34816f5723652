// Apispy captures, filters, redacts, and aggregates the HTTP API calls
// made by end-to-end test suites, then turns them into reports.
//
// Test processes record entries through the library packages; the CLI
// operates on the shared aggregation store they write to:
//
//	# Generate JSON and HTML reports from the store
//	apispy report
//
//	# Regenerate reports whenever workers append new entries
//	apispy report --watch
//
//	# Serve the live report viewer and JSON API
//	apispy serve --listen 127.0.0.1:8799
//
//	# Prune entries past the retention window
//	apispy clean
//
//	# Drop all entries between runs
//	apispy clean --all
//
//	# Open the generated HTML report in a browser
//	apispy open
//
//	# Show version information
//	apispy version
package main

func main() {
	Execute()
}
