package domain

import "time"

// Setting is a single per-user key/value preference.
type Setting struct {
	UserID        string    `json:"userID"`
	Key           string    `json:"key"`
	Value         string    `json:"value"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// MaxDueSoonDays caps the due_soon_days setting. The recurrence engine
// prefetches upcoming rules over exactly this horizon, so a larger window
// could never produce reminders.
const MaxDueSoonDays = 31

// Well-known setting keys.
const (
	SettingTheme          = "theme"
	SettingCurrency       = "currency"
	SettingLanguage       = "language"
	SettingDueSoonDays    = "due_soon_days"
	SettingOnboardingDone = "onboarding_done"
	SettingHideBalances   = "hide_balances"
	SettingAppOpenCount   = "app_open_count"
)

// SettingDefaults maps each known key to the value returned before the
// user's first write.
var SettingDefaults = map[string]string{
	SettingTheme:          "system",
	SettingCurrency:       "USD",
	SettingLanguage:       "en",
	SettingDueSoonDays:    "7",
	SettingOnboardingDone: "false",
	SettingHideBalances:   "false",
	SettingAppOpenCount:   "0",
}
