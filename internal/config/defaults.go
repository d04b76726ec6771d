package config

import "os"

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	user := os.Getenv("USER")
	if user == "" {
		user = "unknown"
	}
	return map[string]interface{}{
		"output_dir":      "./reports",
		"user":            user,
		"show_progress":   true,
		"max_sample_rows": 5000,
	}
}
