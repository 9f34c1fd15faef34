// Package eip712 implements EIP-712 typed structured data hashing on top
// of Keccak-256. The output of HashFullMessage is the 32-byte digest an
// Ethereum wallet signs for eth_signTypedData_v4.
//
// Array-typed fields are recognized during type-dependency analysis but
// are not encoded by the field encoder.
package eip712

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/picops/picocrypto/crypto/keccak"
)

// Field is one named, typed member of a struct type.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Types maps struct names to their ordered field lists. Field order
// defines encoding order; the Go map order of Types itself is irrelevant.
type Types map[string][]Field

// TypedData is the full eth_signTypedData payload.
type TypedData struct {
	Types       Types          `json:"types"`
	PrimaryType string         `json:"primaryType"`
	Domain      map[string]any `json:"domain"`
	Message     map[string]any `json:"message"`
}

var (
	ErrUnknownType      = errors.New("eip712: type not in types and not a primitive")
	ErrUnknownDomainKey = errors.New("eip712: unknown domain key")
	ErrMissingValue     = errors.New("eip712: missing value for field")
	ErrBadValue         = errors.New("eip712: cannot encode value")
)

// isPrimitive reports whether t is a Solidity leaf type: string, bytes,
// bool, address, uintN/intN for N in 8..256 step 8, or bytesN for N in
// 1..32. Array forms are not primitives.
func isPrimitive(t string) bool {
	switch t {
	case "string", "bytes", "bool", "address":
		return true
	}
	if n, ok := strings.CutPrefix(t, "uint"); ok {
		return validIntWidth(n)
	}
	if n, ok := strings.CutPrefix(t, "int"); ok {
		return validIntWidth(n)
	}
	if n, ok := strings.CutPrefix(t, "bytes"); ok {
		w, err := strconv.Atoi(n)
		return err == nil && w >= 1 && w <= 32
	}
	return false
}

func validIntWidth(s string) bool {
	w, err := strconv.Atoi(s)
	return err == nil && w >= 8 && w <= 256 && w%8 == 0
}

// coreType strips any array suffix: "Order[2]" -> "Order".
func coreType(t string) string {
	if i := strings.IndexByte(t, '['); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}

// typeDependencies collects typeName and all struct names reachable from it
// into results. Visited names are skipped, which guards against cycles.
// typeName itself ends up in results; EncodeType removes it, so that a type
// never lists itself as its own dependency.
func typeDependencies(typeName string, types Types, results map[string]bool) error {
	typeName = coreType(typeName)
	if isPrimitive(typeName) || results[typeName] {
		return nil
	}
	fields, ok := types[typeName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownType, typeName)
	}
	results[typeName] = true
	for _, f := range fields {
		if err := typeDependencies(f.Type, types, results); err != nil {
			return err
		}
	}
	return nil
}

// EncodeType renders a struct type and its transitive dependencies in the
// canonical form, e.g. "Mail(address from,string message)". The primary
// type comes first, remaining dependencies follow alphabetically.
func EncodeType(typeName string, types Types) (string, error) {
	deps := make(map[string]bool)
	if err := typeDependencies(typeName, types, deps); err != nil {
		return "", err
	}
	delete(deps, typeName)
	rest := make([]string, 0, len(deps))
	for dep := range deps {
		rest = append(rest, dep)
	}
	sort.Strings(rest)

	var sb strings.Builder
	for _, tn := range append([]string{typeName}, rest...) {
		sb.WriteString(tn)
		sb.WriteByte('(')
		for i, f := range types[tn] {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(f.Type)
			sb.WriteByte(' ')
			sb.WriteString(f.Name)
		}
		sb.WriteByte(')')
	}
	return sb.String(), nil
}

// TypeHash is the Keccak-256 of the canonical type encoding.
func TypeHash(typeName string, types Types) ([]byte, error) {
	enc, err := EncodeType(typeName, types)
	if err != nil {
		return nil, err
	}
	return keccak.Sum([]byte(enc)), nil
}

// HashStruct hashes typeHash(typeName) followed by every field of data
// encoded to 32 bytes, in the order given by types[typeName].
func HashStruct(typeName string, types Types, data map[string]any) ([]byte, error) {
	enc, err := encodeData(typeName, types, data)
	if err != nil {
		return nil, err
	}
	return keccak.Sum(enc), nil
}

func encodeData(typeName string, types Types, data map[string]any) ([]byte, error) {
	th, err := TypeHash(typeName, types)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 32*(1+len(types[typeName])))
	out = append(out, th...)
	for _, f := range types[typeName] {
		word, err := encodeField(types, f.Name, f.Type, data[f.Name])
		if err != nil {
			return nil, err
		}
		out = append(out, word...)
	}
	return out, nil
}

var zeroWord = make([]byte, 32)

// encodeField encodes one field value to exactly 32 bytes.
func encodeField(types Types, name, typ string, value any) ([]byte, error) {
	if _, isStruct := types[coreType(typ)]; isStruct {
		if value == nil {
			return zeroWord, nil
		}
		sub, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: field %q of type %q wants a nested struct, got %T", ErrBadValue, name, typ, value)
		}
		return HashStruct(coreType(typ), types, sub)
	}

	if (typ == "string" || typ == "bytes") && value == nil {
		return zeroWord, nil
	}
	if value == nil {
		return nil, fmt.Errorf("%w: field %q of type %q", ErrMissingValue, name, typ)
	}

	switch {
	case typ == "bool":
		b, err := toBool(value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		word := make([]byte, 32)
		if b {
			word[31] = 1
		}
		return word, nil

	case typ == "string":
		switch s := value.(type) {
		case string:
			return keccak.Sum([]byte(s)), nil
		case []byte:
			return keccak.Sum(s), nil
		}
		return nil, fmt.Errorf("%w: field %q of type string, got %T", ErrBadValue, name, value)

	case strings.HasPrefix(typ, "bytes"):
		raw, err := toBytes(value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		if typ == "bytes" {
			return keccak.Sum(raw), nil
		}
		word := make([]byte, 32)
		copy(word, raw)
		return word, nil

	case strings.HasPrefix(typ, "uint"), strings.HasPrefix(typ, "int"):
		v, err := toInt(value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		if v.Sign() < 0 {
			if strings.HasPrefix(typ, "uint") {
				v = new(big.Int)
			} else {
				// two's complement in 256 bits
				v = new(big.Int).Add(v, new(big.Int).Lsh(big.NewInt(1), 256))
			}
		}
		word := make([]byte, 32)
		v.FillBytes(word)
		return word, nil

	case typ == "address":
		raw, err := toBytes(value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		if len(raw) > 20 {
			raw = raw[:20]
		}
		word := make([]byte, 32)
		copy(word[32-len(raw):], raw)
		return word, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
}

func toBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return v != "" && v != "False" && v != "false" && v != "0", nil
	case int:
		return v != 0, nil
	case int64:
		return v != 0, nil
	case uint64:
		return v != 0, nil
	case *big.Int:
		return v.Sign() != 0, nil
	}
	return false, fmt.Errorf("%w: bool from %T", ErrBadValue, value)
}

func toBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		if strings.HasPrefix(v, "0x") {
			raw, err := hex.DecodeString(v[2:])
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrBadValue, err)
			}
			return raw, nil
		}
		return []byte(v), nil
	case int:
		if v < 0 {
			return nil, fmt.Errorf("%w: bytes from negative integer", ErrBadValue)
		}
		return new(big.Int).SetInt64(int64(v)).FillBytes(make([]byte, 32)), nil
	case int64:
		if v < 0 {
			return nil, fmt.Errorf("%w: bytes from negative integer", ErrBadValue)
		}
		return new(big.Int).SetInt64(v).FillBytes(make([]byte, 32)), nil
	case uint64:
		return new(big.Int).SetUint64(v).FillBytes(make([]byte, 32)), nil
	case *big.Int:
		return new(big.Int).Set(v).FillBytes(make([]byte, 32)), nil
	}
	return nil, fmt.Errorf("%w: bytes from %T", ErrBadValue, value)
}

func toInt(value any) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return v, nil
	case int:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case string:
		base := 10
		s := v
		if strings.HasPrefix(v, "0x") {
			base = 16
			s = v[2:]
		}
		n, ok := new(big.Int).SetString(s, base)
		if !ok {
			return nil, fmt.Errorf("%w: integer from %q", ErrBadValue, v)
		}
		return n, nil
	}
	return nil, fmt.Errorf("%w: integer from %T", ErrBadValue, value)
}

// domainFields is the canonical EIP712Domain member order. Whichever of
// these keys are present in the caller's domain map are encoded in this
// order, regardless of how the map was built.
var domainFields = []Field{
	{Name: "name", Type: "string"},
	{Name: "version", Type: "string"},
	{Name: "chainId", Type: "uint256"},
	{Name: "verifyingContract", Type: "address"},
	{Name: "salt", Type: "bytes32"},
}

// HashDomain computes the EIP-712 domain separator from the present subset
// of the canonical domain keys. Unknown keys are rejected.
func HashDomain(domain map[string]any) ([]byte, error) {
	for key := range domain {
		known := false
		for _, f := range domainFields {
			if f.Name == key {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDomainKey, key)
		}
	}

	fields := make([]Field, 0, len(domainFields))
	for _, f := range domainFields {
		if _, ok := domain[f.Name]; ok {
			fields = append(fields, f)
		}
	}
	return HashStruct("EIP712Domain", Types{"EIP712Domain": fields}, domain)
}

// HashFullMessage computes the digest to sign:
// keccak256(0x19 || 0x01 || domainSeparator || hashStruct(primaryType)).
func HashFullMessage(td TypedData) ([]byte, error) {
	domainSep, err := HashDomain(td.Domain)
	if err != nil {
		return nil, err
	}
	structHash, err := HashStruct(td.PrimaryType, td.Types, td.Message)
	if err != nil {
		return nil, err
	}
	return keccak.SumMany([]byte{0x19, 0x01}, domainSep, structHash), nil
}
