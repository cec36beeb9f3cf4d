// Package config loads the gateway configuration: a YAML file with
// environment-variable overrides, plus optional .env loading for local
// development.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ModeFabric = "fabric"
	ModeInMem  = "inmem"
)

type Fabric struct {
	PeerEndpoint string `yaml:"peer_endpoint"`
	GatewayPeer  string `yaml:"gateway_peer"`
	MSPID        string `yaml:"msp_id"`
	CertPath     string `yaml:"cert_path"`
	KeyPath      string `yaml:"key_path"`
	TLSCertPath  string `yaml:"tls_cert_path"`
	Channel      string `yaml:"channel"`
	Chaincode    string `yaml:"chaincode"`
}

type Config struct {
	Port   string `yaml:"port"`
	Mode   string `yaml:"mode"`
	Fabric Fabric `yaml:"fabric"`
}

// Load reads path if it exists, then applies environment overrides. A
// missing file is not an error; defaults plus environment still produce a
// usable local configuration.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port: "3000",
		Mode: ModeInMem,
		Fabric: Fabric{
			GatewayPeer: "peer0.org1.example.com",
			Channel:     "mainchannel",
			Chaincode:   "real-estate",
		},
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
	}

	overrideString(&cfg.Port, "GATEWAY_PORT")
	overrideString(&cfg.Mode, "GATEWAY_MODE")
	overrideString(&cfg.Fabric.PeerEndpoint, "FABRIC_PEER_ENDPOINT")
	overrideString(&cfg.Fabric.GatewayPeer, "FABRIC_GATEWAY_PEER")
	overrideString(&cfg.Fabric.MSPID, "FABRIC_MSP_ID")
	overrideString(&cfg.Fabric.CertPath, "FABRIC_CERT_PATH")
	overrideString(&cfg.Fabric.KeyPath, "FABRIC_KEY_PATH")
	overrideString(&cfg.Fabric.TLSCertPath, "FABRIC_TLS_CERT_PATH")
	overrideString(&cfg.Fabric.Channel, "FABRIC_CHANNEL")
	overrideString(&cfg.Fabric.Chaincode, "FABRIC_CHAINCODE")

	if cfg.Mode != ModeFabric && cfg.Mode != ModeInMem {
		return Config{}, fmt.Errorf("unknown gateway mode %q", cfg.Mode)
	}
	return cfg, nil
}

func overrideString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}
