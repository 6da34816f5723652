// Package config defines the configuration model for the API spy and the
// single resolution step that turns a caller-supplied partial configuration
// into a fully-populated, validated, immutable one.
//
// Configuration is resolved exactly once per run (defaults applied, then
// environment overrides, then validation) and shared read-only afterwards.
// Nothing in the capture pipeline merges configuration lazily.
//
// # Loading order
//
//  1. YAML file (optional)
//  2. Default values for unset fields
//  3. APISPY_* environment variable overrides
//  4. Validation
//
// # Example
//
//	cfg, err := config.Load("apispy.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
