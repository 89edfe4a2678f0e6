package client

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type configSource interface {
	GetApns() Config
}

// Config carries the construction-time identity of one client: one team,
// one signing key, one target environment.
type Config struct {
	TeamId string `yaml:"teamId"`
	KeyId  string `yaml:"keyId"`
	// KeyFile points at the PKCS8 private key (.p8). Key may carry the
	// PEM inline instead; KeyFile wins when both are set.
	KeyFile    string `yaml:"keyFile"`
	Key        string `yaml:"key"`
	Production bool   `yaml:"production"`
}

// ConfigFromFile reads a yaml config.
func ConfigFromFile(path string) (c Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	err = yaml.Unmarshal(data, &c)
	return
}

func (c Config) privateKey() ([]byte, error) {
	if c.KeyFile != "" {
		data, err := os.ReadFile(c.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("apns: read key file: %w", err)
		}
		return data, nil
	}
	return []byte(c.Key), nil
}
