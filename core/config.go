package core

import "github.com/gobuffalo/envy"

// Configuration describes one probe run. The zero value requests nothing
// and produces a bare context.
type Configuration struct {
	// AppName is reported to the driver as application metadata.
	AppName string

	// Debug enables the validation layer on the instance.
	Debug bool

	// BundlePath, when set, is where the binary writes an artifact
	// bundle of the run. Empty means nothing is written to disk.
	BundlePath string

	// Extensions are device extensions requested at creation.
	Extensions []string

	// Features are feature flags requested at creation.
	Features FeatureFlagSet

	// Functions are extension entry points to resolve after creation.
	Functions []string
}

// FromEnv builds a Configuration from the environment, falling back to
// appName when VKPROBE_APP_NAME is unset. Reads .env files the same way
// the rest of the environment is read.
func FromEnv(appName string) Configuration {
	return Configuration{
		AppName:    envy.Get("VKPROBE_APP_NAME", appName),
		Debug:      envy.Get("VKPROBE_DEBUG", "") != "",
		BundlePath: envy.Get("VKPROBE_BUNDLE", ""),
	}
}
