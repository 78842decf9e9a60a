package config

// File represents the structure of the optional condalock.yml configuration file.
// Every field is optional; environment variables take precedence.
type File struct {
	Root             string `yaml:"root"`
	PackageManager   string `yaml:"packageManager"`
	ContainerRuntime string `yaml:"containerRuntime"`
	BaseImage        string `yaml:"baseImage"`
	Timeout          string `yaml:"timeout"`
}
