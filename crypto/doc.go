// crypto is the core cryptography package for picocrypto.
//
// It defines the key interfaces shared by the curve implementations and
// wraps select hash functionality for easy usage with our libraries.
//
// Keys:
//
// All key generation functions return an instance of the PrivKey interface
// which implements methods:
//
//	type PrivKey interface {
//		Bytes() []byte
//		Sign(msg []byte) ([]byte, error)
//		PubKey() PubKey
//		Type() string
//	}
//
// From the above method we can retrieve the public key if needed:
//
//	privKey := secp256k1.GenPrivKey()
//	pubKey := privKey.PubKey()
//
// The resulting public key is an instance of the PubKey interface:
//
//	type PubKey interface {
//		Address() Address
//		Bytes() []byte
//		VerifySignature(msg []byte, sig []byte) bool
//		Type() string
//	}
package crypto
