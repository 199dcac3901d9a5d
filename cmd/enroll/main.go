package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/farmnet/farmledger/internal/config"
	"github.com/farmnet/farmledger/internal/ledger"
)

// enroll imports an X.509 certificate/key pair produced by the CA into
// the filesystem wallet, so the gateway can transact under that label.
func main() {
	var (
		label    = flag.String("label", "", "wallet label to store the identity under")
		certPath = flag.String("cert", "", "path to the PEM certificate")
		keyPath  = flag.String("key", "", "path to the PEM private key")
	)
	flag.Parse()

	if *label == "" || *certPath == "" || *keyPath == "" {
		fmt.Fprintln(os.Stderr, "usage: enroll -label <name> -cert <cert.pem> -key <key.pem>")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	if err := ledger.ImportIdentity(cfg.Fabric.WalletPath, *label, cfg.Fabric.MSPID, *certPath, *keyPath); err != nil {
		fmt.Fprintf(os.Stderr, "import identity: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("identity %q stored in wallet %s\n", *label, cfg.Fabric.WalletPath)
}
