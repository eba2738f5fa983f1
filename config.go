package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jinzhu/configor"
)

const (
	ProviderAWS = "aws"
	ProviderGCP = "gcp"

	ArchiveTarGz = "tar.gz"
	ArchiveZip   = "zip"
)

type AppConfig struct {
	Provider       ProviderConfig
	Notify         NotifyConfig
	At             string
	TempDir        string
	Archive        string         `default:"tar.gz"`
	LogLevel       string         `default:"info"`
	ObjectsToStore []TargetConfig `json:"objects_to_store" yaml:"objects_to_store" toml:"objects_to_store"`
}

type ProviderConfig struct {
	Name            string `default:"aws"`
	Region          string
	Profile         string
	Bucket          string
	AccessKey       string
	SecretKey       string
	CredentialsFile string
}

type NotifyConfig struct {
	Profile string
	Region  string
	ID      string
}

// TargetConfig describes one object to store.
type TargetConfig struct {
	Path         TargetPath `json:"path" yaml:"path" toml:"path"`
	StorageClass string     `json:"StorageClass" yaml:"StorageClass" toml:"StorageClass"`
	ObjectName   string     `json:"objectName" yaml:"objectName" toml:"objectName"`
	Force        bool       `json:"force" yaml:"force" toml:"force"`
}

func (t TargetConfig) String() string {
	return fmt.Sprintf("{path: %s, StorageClass: %s, objectName: %q, force: %t}",
		t.Path, t.StorageClass, t.ObjectName, t.Force)
}

// TargetPath is either a single path or a group of paths. A group written with a single
// element is still a group.
type TargetPath struct {
	Paths []string
	Group bool
}

func SinglePath(path string) TargetPath {
	return TargetPath{Paths: []string{path}}
}

func PathGroup(paths ...string) TargetPath {
	return TargetPath{Paths: paths, Group: true}
}

// Single returns the path of a non-group target.
func (p TargetPath) Single() (string, bool) {
	if p.Group || len(p.Paths) != 1 {
		return "", false
	}
	return p.Paths[0], true
}

func (p TargetPath) String() string {
	if path, ok := p.Single(); ok {
		return path
	}
	return "[" + strings.Join(p.Paths, ", ") + "]"
}

func (p *TargetPath) set(value interface{}) error {
	switch v := value.(type) {
	case string:
		*p = SinglePath(v)
	case []interface{}:
		paths := make([]string, 0, len(v))
		for _, item := range v {
			path, ok := item.(string)
			if !ok {
				return fmt.Errorf("path list entries must be strings, got %T", item)
			}
			paths = append(paths, path)
		}
		*p = PathGroup(paths...)
	default:
		return fmt.Errorf("path must be a string or a list of strings, got %T", value)
	}
	return nil
}

func (p *TargetPath) UnmarshalJSON(data []byte) error {
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	return p.set(value)
}

func (p *TargetPath) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var value interface{}
	if err := unmarshal(&value); err != nil {
		return err
	}
	return p.set(value)
}

func (p *TargetPath) UnmarshalTOML(value interface{}) error {
	return p.set(value)
}

func LoadConfig(path string) (AppConfig, error) {
	var appConfig AppConfig
	if err := configor.Load(&appConfig, path); err != nil {
		return appConfig, fmt.Errorf("loading config %s: %w", path, err)
	}
	appConfig.applyEnvironment()
	if err := appConfig.Validate(); err != nil {
		return appConfig, err
	}

	return appConfig, nil
}

// applyEnvironment fills bucket and credentials from the environment when the config file
// leaves them empty. Values from the file win.
func (c *AppConfig) applyEnvironment() {
	envDefaults := map[*string]string{
		&c.Provider.Bucket:    "BUCKET",
		&c.Provider.AccessKey: "AWS_ACCESS_KEY",
		&c.Provider.SecretKey: "AWS_SECRET_KEY",
	}
	for field, envName := range envDefaults {
		if *field == "" {
			*field = os.Getenv(envName)
		}
	}
}

// Validate checks the settings the whole run depends on. Per-target problems are left to
// the run so that one bad target does not stop the others.
func (c AppConfig) Validate() error {
	if c.Provider.Bucket == "" {
		return fmt.Errorf("no bucket configured, set Provider.Bucket or BUCKET")
	}
	switch c.Provider.Name {
	case ProviderAWS, ProviderGCP:
	default:
		return fmt.Errorf("Unknown cloud provider: %s", c.Provider.Name)
	}
	switch c.Archive {
	case ArchiveTarGz, ArchiveZip:
	default:
		return fmt.Errorf("Unknown archive format: %s", c.Archive)
	}

	return nil
}

func (c AppConfig) ClientFromConfig() (BucketClient, error) {
	switch c.Provider.Name {
	case ProviderAWS:
		return NewS3BucketClient(c)
	case ProviderGCP:
		return NewGCSBucketClient(c)
	default:
		return nil, fmt.Errorf("Unknown cloud provider: %s", c.Provider.Name)
	}
}

func (c AppConfig) ConfigStringArray() []string {
	configStrArr := make([]string, 0)
	configStrArr = append(configStrArr, fmt.Sprintf("  - Provider: %s", c.Provider.Name))
	configStrArr = append(configStrArr, fmt.Sprintf("  - Region: %s", c.Provider.Region))
	configStrArr = append(configStrArr, fmt.Sprintf("  - Profile: %s", c.Provider.Profile))
	configStrArr = append(configStrArr, fmt.Sprintf("  - Bucket: %s", c.Provider.Bucket))
	configStrArr = append(configStrArr, fmt.Sprintf("  - Archive: %s", c.Archive))

	if c.At != "" {
		configStrArr = append(configStrArr, fmt.Sprintf("  - Schedule: %s", c.At))
	}
	if c.Notify.ID != "" {
		configStrArr = append(configStrArr, fmt.Sprintf("  - SNSTopic: %s", c.Notify.ID))
	}

	configStrArr = append(configStrArr, "Objects To Store:")
	for _, target := range c.ObjectsToStore {
		configStrArr = append(configStrArr, fmt.Sprintf("  - %s", target))
	}

	return configStrArr
}
