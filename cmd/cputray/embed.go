package main

import _ "embed"

// embeddedConfig is the built-in configuration layered under any config
// file found on disk.
//
//go:embed default_config.yaml
var embeddedConfig []byte
