package registry

import (
	"os"

	"github.com/pelletier/go-toml"
)

type Configuration struct {
	Name            string      `toml:"name"`
	Symbol          string      `toml:"symbol"`
	Minter          string      `toml:"minter"`
	Creator         string      `toml:"creator"`
	WithdrawAddress string      `toml:"withdraw-address"`
	Attributes      []Attribute `toml:"attributes"`
}

func Setup(path string) (*Configuration, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var conf Configuration
	err = toml.Unmarshal(f, &conf)
	if err != nil {
		return nil, err
	}
	return &conf, nil
}
