// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ethsig implements withdrawal signatures in the Ethereum eth_sign
// scheme: secp256k1 signatures over the keccak256 hash of the prefixed
// payload, in [R || S || V] form.
package ethsig

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strconv"

	"github.com/luxfi/crypto"
	"github.com/luxfi/geth/common"

	lru "github.com/hashicorp/golang-lru"
)

const (
	// SignatureLen is the length of an [R || S || V] signature.
	SignatureLen = 65

	legacyV      = 27
	signedPrefix = "\x19Ethereum Signed Message:\n"
)

var (
	ErrInvalidSignatureLen = errors.New("invalid signature length")
	ErrInvalidRecoveryID   = errors.New("invalid recovery id")
	ErrSignerMismatch      = errors.New("signature not produced by claimed signer")
)

// TextHash returns the hash an eth_sign signature over [payload] commits to.
func TextHash(payload []byte) []byte {
	prefix := signedPrefix + strconv.Itoa(len(payload))
	return crypto.Keccak256([]byte(prefix), payload)
}

// Verifier recovers the signer of a signature and compares it with the
// claimed one. Recovered signers are memoized.
type Verifier struct {
	recovered *lru.Cache
}

func NewVerifier(cacheSize int) (*Verifier, error) {
	recovered, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Verifier{
		recovered: recovered,
	}, nil
}

func (v *Verifier) Verify(payload []byte, signer common.Address, signature []byte) error {
	recovered, err := v.Recover(payload, signature)
	if err != nil {
		return err
	}
	if recovered != signer {
		return fmt.Errorf("%w: recovered %s, claimed %s", ErrSignerMismatch, recovered, signer)
	}
	return nil
}

// Recover returns the address that produced [signature] over [payload].
func (v *Verifier) Recover(payload []byte, signature []byte) (common.Address, error) {
	if len(signature) != SignatureLen {
		return common.Address{}, fmt.Errorf("%w: expected %d bytes but got %d", ErrInvalidSignatureLen, SignatureLen, len(signature))
	}

	hash := TextHash(payload)
	key := string(hash) + string(signature)
	if addr, ok := v.recovered.Get(key); ok {
		return addr.(common.Address), nil
	}

	sig := make([]byte, SignatureLen)
	copy(sig, signature)
	if sig[crypto.RecoveryIDOffset] >= legacyV {
		sig[crypto.RecoveryIDOffset] -= legacyV
	}
	if sig[crypto.RecoveryIDOffset] > 1 {
		return common.Address{}, fmt.Errorf("%w: %d", ErrInvalidRecoveryID, signature[crypto.RecoveryIDOffset])
	}

	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return common.Address{}, err
	}
	addr := common.Address(crypto.PubkeyToAddress(*pub))
	v.recovered.Add(key, addr)
	return addr, nil
}

// Signer produces eth_sign signatures with a private key held by the caller.
type Signer struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

func NewSigner(key *ecdsa.PrivateKey) *Signer {
	return &Signer{
		key:     key,
		address: common.Address(crypto.PubkeyToAddress(key.PublicKey)),
	}
}

// ParseSigner reads a hex encoded secp256k1 private key.
func ParseSigner(hexKey string) (*Signer, error) {
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, err
	}
	return NewSigner(key), nil
}

func (s *Signer) Address() common.Address {
	return s.address
}

// Sign returns the [R || S || V] signature over [payload] with V in {27, 28}.
func (s *Signer) Sign(payload []byte) ([]byte, error) {
	sig, err := crypto.Sign(TextHash(payload), s.key)
	if err != nil {
		return nil, err
	}
	sig[crypto.RecoveryIDOffset] += legacyV
	return sig, nil
}
