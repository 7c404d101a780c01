package main

// version is the application version, set via ldflags.
var version = "dev"

func init() {
	rootCmd.Version = version
}
