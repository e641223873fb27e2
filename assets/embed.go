package assets

import (
	_ "embed"
)

// ResolutionsJSON contains the built-in resolution profiles. A user profile
// file merges over these at startup.
//
//go:embed resolutions.json
var ResolutionsJSON []byte

// ItemsCSV contains the default item knowledge base. Replaced entirely when
// the config points at an external CSV.
//
//go:embed items.csv
var ItemsCSV []byte
