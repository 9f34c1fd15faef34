package eip712

import (
	"math/big"

	"github.com/picops/picocrypto/crypto/keccak"
)

// The legacy Agent flow hard-codes its two struct types, so the typehashes
// are fixed constants.
var (
	domainTypeHash = keccak.Sum([]byte("EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"))
	agentTypeHash  = keccak.Sum([]byte("Agent(string source,bytes32 connectionId)"))
)

// Domain identifies the signing context for the legacy Agent flow. All
// four members are required.
type Domain struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract string
}

func hashLegacyDomain(d Domain) ([]byte, error) {
	addr, err := toBytes(d.VerifyingContract)
	if err != nil {
		return nil, err
	}
	if len(addr) > 20 {
		addr = addr[:20]
	}
	addrWord := make([]byte, 32)
	copy(addrWord[32-len(addr):], addr)

	chainID := make([]byte, 32)
	if d.ChainID != nil {
		d.ChainID.FillBytes(chainID)
	}

	return keccak.SumMany(
		domainTypeHash,
		keccak.Sum([]byte(d.Name)),
		keccak.Sum([]byte(d.Version)),
		chainID,
		addrWord,
	), nil
}

func hashAgent(source string, connectionID []byte) []byte {
	conn := make([]byte, 32)
	copy(conn, connectionID)
	return keccak.SumMany(agentTypeHash, keccak.Sum([]byte(source)), conn)
}

// HashAgentMessage computes the digest to sign for the legacy
// Agent(source, connectionId) message under the given domain:
// keccak256(0x19 || 0x01 || hashDomain || hashAgent).
func HashAgentMessage(domain Domain, source string, connectionID []byte) ([]byte, error) {
	domainSep, err := hashLegacyDomain(domain)
	if err != nil {
		return nil, err
	}
	return keccak.SumMany([]byte{0x19, 0x01}, domainSep, hashAgent(source, connectionID)), nil
}
