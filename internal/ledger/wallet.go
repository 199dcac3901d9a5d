package ledger

import (
	"fmt"
	"os"

	"github.com/hyperledger/fabric-sdk-go/pkg/gateway"
)

// ImportIdentity places an X.509 credential pair into the filesystem
// wallet under the given label. Used by the enroll utility; the server
// never writes to the wallet.
func ImportIdentity(walletPath, label, mspID, certPath, keyPath string) error {
	wallet, err := gateway.NewFileSystemWallet(walletPath)
	if err != nil {
		return fmt.Errorf("open wallet %s: %w", walletPath, err)
	}
	if wallet.Exists(label) {
		return fmt.Errorf("identity %q %s", label, "already exists in wallet")
	}
	cert, err := os.ReadFile(certPath)
	if err != nil {
		return fmt.Errorf("read certificate: %w", err)
	}
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return fmt.Errorf("read private key: %w", err)
	}
	identity := gateway.NewX509Identity(mspID, string(cert), string(key))
	if err := wallet.Put(label, identity); err != nil {
		return fmt.Errorf("store identity %q: %w", label, err)
	}
	return nil
}
