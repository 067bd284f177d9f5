package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/teamdraft/internal/model"
	"github.com/mcoot/teamdraft/internal/storage"
	"github.com/mcoot/teamdraft/internal/testutil"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestSetAndGet() {
	err := s.storage.Set(s.ctx, storage.KeyRoster, []byte(`["A","B"]`))
	s.Require().NoError(err)

	got, err := s.storage.Get(s.ctx, storage.KeyRoster)
	s.Require().NoError(err)
	s.JSONEq(`["A","B"]`, string(got))
}

func (s *StorageSuite) TestKeysArePrefixed() {
	_ = s.storage.Set(s.ctx, storage.KeyMapCount, []byte("5"))

	raw, err := s.mini.Get("teamdraft:kv:valorant-map-count")
	s.Require().NoError(err)
	s.Equal("5", raw)
}

func (s *StorageSuite) TestGetNotFound() {
	_, err := s.storage.Get(s.ctx, "missing")
	s.ErrorIs(err, model.ErrKeyNotFound)
}

func (s *StorageSuite) TestNoTTLByDefault() {
	_ = s.storage.Set(s.ctx, "k", []byte("1"))

	s.Equal(time.Duration(0), s.mini.TTL(s.storage.kvKey("k")))
}

func (s *StorageSuite) TestTTLApplied() {
	cfg := DefaultConfig()
	cfg.TTL = time.Hour
	st := NewWithClient(redis.NewClient(&redis.Options{Addr: s.mini.Addr()}), cfg)
	defer st.Close()

	_ = st.Set(s.ctx, "k", []byte("1"))

	s.Equal(time.Hour, s.mini.TTL(st.kvKey("k")))
	s.mini.FastForward(2 * time.Hour)
	_, err := st.Get(s.ctx, "k")
	s.ErrorIs(err, model.ErrKeyNotFound)
}

func (s *StorageSuite) TestLoadHelperRoundTrip() {
	s.Require().NoError(storage.Save(s.ctx, s.storage, storage.KeyMapCount, model.MapCount(5)))

	got := storage.Load(s.ctx, s.storage, testutil.NopLogger(), storage.KeyMapCount, model.DefaultMapCount)
	s.Equal(model.MapCount(5), got)
}

func (s *StorageSuite) TestConnectionLost() {
	s.mini.Close()

	_, err := s.storage.Get(s.ctx, "k")
	s.Error(err)
	s.NotErrorIs(err, model.ErrKeyNotFound)
	s.Contains(err.Error(), "redis get k")
	s.mini = nil
}

func (s *StorageSuite) TestCustomPrefix() {
	cfg := DefaultConfig()
	cfg.KeyPrefix = "staging"
	st := NewWithClient(redis.NewClient(&redis.Options{Addr: s.mini.Addr()}), cfg)
	defer st.Close()

	s.Require().NoError(st.Set(s.ctx, storage.KeyMapCount, []byte("3")))

	raw, err := s.mini.Get("staging:kv:valorant-map-count")
	s.Require().NoError(err)
	s.Equal("3", raw)

	_, err = s.storage.Get(s.ctx, storage.KeyMapCount)
	s.ErrorIs(err, model.ErrKeyNotFound)
}

func (s *StorageSuite) TestEmptyPrefixFallsBackToDefault() {
	st := NewWithClient(redis.NewClient(&redis.Options{Addr: s.mini.Addr()}), Config{})
	defer st.Close()

	s.Equal("teamdraft:kv:k", st.kvKey("k"))
}

func (s *StorageSuite) TestNewPingsServer() {
	cfg := DefaultConfig()
	cfg.URL = "redis://" + s.mini.Addr()

	st, err := New(cfg)
	s.Require().NoError(err)
	defer st.Close()

	s.NoError(st.Ping(s.ctx))
}

func (s *StorageSuite) TestNewInvalidURL() {
	cfg := DefaultConfig()
	cfg.URL = "memcached://nope"

	_, err := New(cfg)
	s.ErrorContains(err, "parse redis url")
}

func (s *StorageSuite) TestNewUnreachable() {
	addr := s.mini.Addr()
	s.mini.Close()
	s.mini = nil

	cfg := DefaultConfig()
	cfg.URL = "redis://" + addr
	cfg.DialTimeout = 200 * time.Millisecond

	_, err := New(cfg)
	s.ErrorContains(err, "redis ping")
}
