package localfs

// Config defines the configuration options for the disk file store.
type Config struct {
	// Dir is the root directory files are stored under. Created on start if missing.
	Dir string `yaml:"dir" default:"./uploads/foods"`
}
