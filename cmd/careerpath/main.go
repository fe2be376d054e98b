/*
main.go - Application entry point

PURPOSE:
  The careerpath binary: serves the HTTP API and projects plans from the
  terminal.

COMMANDS:
  serve          Start the HTTP API (serve.go)
  project        Project one plan and print the report (project.go)
  compare        Rank the presets or plan files by ROI (project.go)
  presets        List the built-in plans (project.go)
  config init    Write a default config file (config_cmd.go)
  config show    Print the effective configuration (config_cmd.go)

CONFIGURATION:
  --config points at a TOML file (default: $XDG_CONFIG_HOME/careerpath/config.toml).
  CAREERPATH_PORT, CAREERPATH_DB and CAREERPATH_LOG_LEVEL override the file;
  command flags override both.

SEE ALSO:
  - config/config.go: Config file format
  - api/server.go: Router configuration
*/
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
