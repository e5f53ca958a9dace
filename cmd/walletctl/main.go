// Walletctl is the operations CLI for the KeyGuardian wallet.
//
// The wallet stores API keys encrypted at rest with AES-256-GCM, scoped to
// an owning identity and grouped into user-defined categories. Walletctl
// provides the out-of-band operational tasks:
//
//	# Generate a fresh base64-encoded 256-bit encryption key
//	walletctl keygen
//
//	# Verify that every stored ciphertext opens under the active key
//	walletctl verify --config /etc/keyguardian/wallet.yaml
//
//	# Show version information
//	walletctl version
package main

func main() {
	Execute()
}
