package config

import _ "embed"

// Example contains a complete example bindings file. It is written out by
// `vmseed init` as a starting point.
//
//go:embed vmseed.example.yaml
var Example string
