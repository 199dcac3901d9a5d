package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("FABRIC_CCP_PATH", "testdata/connection-org1.yaml")
	os.Setenv("FABRIC_CHANNEL", "farmchannel")
	os.Setenv("JWT_SECRET", "testsecret123456789012345678901234")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Fabric.CCPPath == "" || cfg.Fabric.Channel != "farmchannel" {
		t.Fatalf("unexpected fabric config values: %+v", cfg.Fabric)
	}
	if cfg.Fabric.DiscoveryTimeout.Seconds() != 10 {
		t.Fatalf("expected default discovery timeout of 10s, got %v", cfg.Fabric.DiscoveryTimeout)
	}
	if cfg.Fabric.Identity == "" || cfg.Fabric.WalletPath == "" {
		t.Fatalf("expected identity and wallet defaults: %+v", cfg.Fabric)
	}
}
