package dto

// PutSettingRequest writes one setting value.
type PutSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// SettingResponse defines the data returned for a single setting.
type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SettingsResponse returns the effective settings map: defaults overlaid with
// everything the user has written.
type SettingsResponse struct {
	Settings map[string]string `json:"settings"`
}
