package domain

// RegistryKey names a value of the key/value registry.
type RegistryKey string

// Dot11RetentionTimeDays holds the number of days 802.11 data is kept.
const Dot11RetentionTimeDays RegistryKey = "DOT11_RETENTION_TIME_DAYS"

// RegistryMissingMarker replaces an absent registry value; it never parses
// as a number.
const RegistryMissingMarker = "MISSING"
