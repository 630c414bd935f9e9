// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/cache/lru"
	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/geth/common"
)

const requestCacheSize = 2048

var (
	metadataPrefix = []byte("metadata")
	depositPrefix  = []byte("deposit")
	requestPrefix  = []byte("request")
	eventPrefix    = []byte("event")

	authoritiesKey  = []byte("authorities")
	depositCountKey = []byte("depositCount")
	eventCountKey   = []byte("eventCount")
	pendingCountKey = []byte("pendingCount")
	depositedKey    = []byte("deposited")
	releasedKey     = []byte("released")

	errWrongVersion = errors.New("wrong codec version")
)

// persistedAuthorities records the configuration a ledger was created with.
type persistedAuthorities struct {
	Threshold   uint32           `serialize:"true"`
	Authorities []common.Address `serialize:"true"`
}

type counters struct {
	deposits  uint64
	events    uint64
	pending   uint64
	deposited *uint256.Int
	released  *uint256.Int
}

// state is the persisted ledger. Every mutation is staged in a versiondb
// and becomes durable on commit. The caller serializes access.
type state struct {
	vdb *versiondb.Database

	metadataDB database.Database
	depositDB  database.Database
	requestDB  database.Database
	eventDB    database.Database

	// Caches committed requests only.
	requestCache *lru.Cache[common.Hash, *WithdrawalRequest]

	counters counters
	// snapshot holds the counters as of the last commit.
	snapshot counters
	modified map[common.Hash]*WithdrawalRequest
}

func newState(db database.Database) (*state, error) {
	vdb := versiondb.New(db)
	s := &state{
		vdb:          vdb,
		metadataDB:   prefixdb.New(metadataPrefix, vdb),
		depositDB:    prefixdb.New(depositPrefix, vdb),
		requestDB:    prefixdb.New(requestPrefix, vdb),
		eventDB:      prefixdb.New(eventPrefix, vdb),
		requestCache: lru.NewCache[common.Hash, *WithdrawalRequest](requestCacheSize),
		modified:     make(map[common.Hash]*WithdrawalRequest),
	}

	var err error
	if s.counters.deposits, err = getCount(s.metadataDB, depositCountKey); err != nil {
		return nil, err
	}
	if s.counters.events, err = getCount(s.metadataDB, eventCountKey); err != nil {
		return nil, err
	}
	if s.counters.pending, err = getCount(s.metadataDB, pendingCountKey); err != nil {
		return nil, err
	}
	if s.counters.deposited, err = getAmount(s.metadataDB, depositedKey); err != nil {
		return nil, err
	}
	if s.counters.released, err = getAmount(s.metadataDB, releasedKey); err != nil {
		return nil, err
	}
	s.snapshot = s.counters
	return s, nil
}

func getCount(db database.KeyValueReader, key []byte) (uint64, error) {
	count, err := database.GetUInt64(db, key)
	if err == database.ErrNotFound {
		return 0, nil
	}
	return count, err
}

func getAmount(db database.KeyValueReader, key []byte) (*uint256.Int, error) {
	b, err := db.Get(key)
	if err == database.ErrNotFound {
		return new(uint256.Int), nil
	}
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(b), nil
}

func putAmount(db database.KeyValueWriter, key []byte, amount *uint256.Int) error {
	b := amount.Bytes32()
	return db.Put(key, b[:])
}

// getAuthorities returns database.ErrNotFound for a fresh ledger.
func (s *state) getAuthorities() (*persistedAuthorities, error) {
	b, err := s.metadataDB.Get(authoritiesKey)
	if err != nil {
		return nil, err
	}
	a := &persistedAuthorities{}
	if err := unmarshal(b, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *state) putAuthorities(a *persistedAuthorities) error {
	b, err := Codec.Marshal(CodecVersion, a)
	if err != nil {
		return err
	}
	return s.metadataDB.Put(authoritiesKey, b)
}

func (s *state) addDeposit(d *Deposit) error {
	d.Sequence = s.counters.deposits
	b, err := Codec.Marshal(CodecVersion, d)
	if err != nil {
		return err
	}
	if err := s.depositDB.Put(database.PackUInt64(d.Sequence), b); err != nil {
		return err
	}
	s.counters.deposits++
	return nil
}

func (s *state) getDeposit(sequence uint64) (*Deposit, error) {
	b, err := s.depositDB.Get(database.PackUInt64(sequence))
	if err != nil {
		return nil, err
	}
	d := &Deposit{}
	if err := unmarshal(b, d); err != nil {
		return nil, err
	}
	return d, nil
}

// getRequest returns database.ErrNotFound if no signature was accepted for
// [requestID] yet. The returned request must not be modified.
func (s *state) getRequest(requestID common.Hash) (*WithdrawalRequest, error) {
	if r, ok := s.modified[requestID]; ok {
		return r, nil
	}
	if r, ok := s.requestCache.Get(requestID); ok {
		return r, nil
	}

	b, err := s.requestDB.Get(requestID[:])
	if err != nil {
		return nil, err
	}
	r := &WithdrawalRequest{}
	if err := unmarshal(b, r); err != nil {
		return nil, err
	}
	s.requestCache.Put(requestID, r)
	return r, nil
}

func (s *state) putRequest(r *WithdrawalRequest) error {
	b, err := Codec.Marshal(CodecVersion, r)
	if err != nil {
		return err
	}
	if err := s.requestDB.Put(r.RequestID[:], b); err != nil {
		return err
	}
	s.modified[r.RequestID] = r
	return nil
}

func (s *state) addEvent(e *Event) error {
	e.Sequence = s.counters.events
	b, err := Codec.Marshal(CodecVersion, e)
	if err != nil {
		return err
	}
	if err := s.eventDB.Put(database.PackUInt64(e.Sequence), b); err != nil {
		return err
	}
	s.counters.events++
	return nil
}

// getEvents returns up to [limit] events starting at sequence [from].
func (s *state) getEvents(from uint64, limit int) ([]*Event, error) {
	iter := s.eventDB.NewIteratorWithStart(database.PackUInt64(from))
	defer iter.Release()

	var events []*Event
	for len(events) < limit && iter.Next() {
		e := &Event{}
		if err := unmarshal(iter.Value(), e); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, iter.Error()
}

// commit makes every staged write durable.
func (s *state) commit() error {
	if err := s.writeCounters(); err != nil {
		return err
	}
	if err := s.vdb.Commit(); err != nil {
		return fmt.Errorf("failed to commit ledger: %w", err)
	}
	for requestID, r := range s.modified {
		s.requestCache.Put(requestID, r)
	}
	clear(s.modified)
	s.snapshot = s.counters
	return nil
}

// abort discards every write staged since the last commit.
func (s *state) abort() {
	s.vdb.Abort()
	clear(s.modified)
	s.counters = s.snapshot
}

func (s *state) writeCounters() error {
	if err := database.PutUInt64(s.metadataDB, depositCountKey, s.counters.deposits); err != nil {
		return err
	}
	if err := database.PutUInt64(s.metadataDB, eventCountKey, s.counters.events); err != nil {
		return err
	}
	if err := database.PutUInt64(s.metadataDB, pendingCountKey, s.counters.pending); err != nil {
		return err
	}
	if err := putAmount(s.metadataDB, depositedKey, s.counters.deposited); err != nil {
		return err
	}
	return putAmount(s.metadataDB, releasedKey, s.counters.released)
}

func unmarshal(b []byte, dest interface{}) error {
	version, err := Codec.Unmarshal(b, dest)
	if err != nil {
		return err
	}
	if version != CodecVersion {
		return errWrongVersion
	}
	return nil
}
