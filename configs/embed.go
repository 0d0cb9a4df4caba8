// Package configs provides the embedded configuration template written by
// `codescope init`. Embedding keeps the template available in every build,
// whether installed from source or a binary release.
package configs

import _ "embed"

// ProjectConfigTemplate is the annotated template for .codescope.yaml.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string
