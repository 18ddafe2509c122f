// Package keys implements secp256k1 key generation, address derivation and
// recoverable signing for both chain families the custody core supports.
package keys

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/sha3"
)

// TronVersionByte prefixes the 20-byte account hash before base58check
// encoding, producing the familiar "T..." address form.
const TronVersionByte = 0x41

// GenerateKeyPair returns a fresh random secp256k1 private key.
func GenerateKeyPair() (*btcec.PrivateKey, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generating secp256k1 key: %w", err)
	}
	return priv, nil
}

// PrivateKeyFromHex parses a hex-encoded 256-bit scalar.
func PrivateKeyFromHex(hexKey string) (*btcec.PrivateKey, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("decoding private key hex: %w", err)
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d", len(raw))
	}
	priv, _ := btcec.PrivKeyFromBytes(raw)
	return priv, nil
}

// PrivateKeyHex serializes a private key as lowercase hex.
func PrivateKeyHex(priv *btcec.PrivateKey) string {
	return hex.EncodeToString(priv.Serialize())
}

// Keccak256 computes the legacy Keccak-256 digest used by EVM chains.
func Keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// accountHash returns the 20-byte account hash shared by the EVM and Tron
// address formats: keccak256 of the uncompressed public key without the
// 0x04 prefix, last 20 bytes.
func accountHash(pub *btcec.PublicKey) []byte {
	uncompressed := pub.SerializeUncompressed()
	digest := Keccak256(uncompressed[1:])
	return digest[12:]
}

// EVMAddress derives the EIP-55 checksummed hex address for a public key.
func EVMAddress(pub *btcec.PublicKey) string {
	return ChecksumAddress(hex.EncodeToString(accountHash(pub)))
}

// ChecksumAddress applies the EIP-55 mixed-case checksum to a bare
// 40-character hex address.
func ChecksumAddress(hexAddr string) string {
	addr := strings.ToLower(strings.TrimPrefix(hexAddr, "0x"))
	digest := Keccak256([]byte(addr))

	var b strings.Builder
	b.WriteString("0x")
	for i, c := range addr {
		if c >= 'a' && c <= 'f' {
			// Uppercase when the corresponding checksum nibble >= 8.
			nibble := digest[i/2]
			if i%2 == 0 {
				nibble >>= 4
			}
			if nibble&0x08 != 0 {
				c = c - 'a' + 'A'
			}
		}
		b.WriteRune(c)
	}
	return b.String()
}

// TronAddress derives the base58check "T..." address for a public key:
// version byte 0x41 prepended to the account hash, double-SHA256 checksum.
func TronAddress(pub *btcec.PublicKey) string {
	return base58.CheckEncode(accountHash(pub), TronVersionByte)
}

// TronAddressToHex converts a base58check Tron address into the 21-byte
// hex form (41...) the node API expects.
func TronAddressToHex(addr string) (string, error) {
	payload, version, err := base58.CheckDecode(addr)
	if err != nil {
		return "", fmt.Errorf("decoding tron address: %w", err)
	}
	if version != TronVersionByte {
		return "", fmt.Errorf("unexpected tron address version byte 0x%02x", version)
	}
	if len(payload) != 20 {
		return "", fmt.Errorf("tron address payload must be 20 bytes, got %d", len(payload))
	}
	return hex.EncodeToString(append([]byte{TronVersionByte}, payload...)), nil
}

// SignPersonal signs a message with the Ethereum personal-sign scheme:
// keccak256("\x19Ethereum Signed Message:\n" + len + message), returning
// the 65-byte r||s||v signature with v in {27, 28}.
func SignPersonal(priv *btcec.PrivateKey, message []byte) []byte {
	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(message), message)
	digest := Keccak256([]byte(prefixed))
	return toEthSignature(ecdsa.SignCompact(priv, digest, false), 27)
}

// SignTronTx signs a Tron raw transaction: sha256 of the raw_data bytes,
// r||s||v with v in {0, 1}.
func SignTronTx(priv *btcec.PrivateKey, rawData []byte) []byte {
	digest := sha256.Sum256(rawData)
	return toEthSignature(ecdsa.SignCompact(priv, digest[:], false), 0)
}

// toEthSignature rearranges a compact [v, r, s] signature into r||s||v
// with the recovery id rebased onto vBase.
func toEthSignature(compact []byte, vBase byte) []byte {
	sig := make([]byte, 65)
	copy(sig[0:64], compact[1:65])
	sig[64] = compact[0] - 27 + vBase
	return sig
}
