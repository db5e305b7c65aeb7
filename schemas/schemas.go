// Package schemas embeds the JSON Schema documents used to validate
// persisted artifacts.
package schemas

import _ "embed"

// CampaignState is the schema for the persisted campaign state document.
//
//go:embed campaign_state.schema.json
var CampaignState string
