// Package runtime embeds the fixed qit.h runtime header (spec.md §1's
// "prewritten header... pinned in §6") so internal/driver can write it
// alongside generated sources without shipping it as a separate asset.
// Grounded on the teacher's go:embed asset-bundling convention.
package runtime

import _ "embed"

// Header is the contents of qit.h, written into the build directory
// before every compile.
//
//go:embed qit.h
var Header []byte
