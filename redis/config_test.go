package redis

import (
	"strings"
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Host != DefaultHost || cfg.Port != DefaultPort {
		t.Errorf("endpoint = %s:%d", cfg.Host, cfg.Port)
	}
	if cfg.MaxIdle != 60*time.Second || cfg.MaxWait != 20*time.Second {
		t.Errorf("MaxIdle = %v, MaxWait = %v", cfg.MaxIdle, cfg.MaxWait)
	}
	if cfg.TestOnBorrow {
		t.Error("TestOnBorrow should default to false")
	}
	if cfg.ShardCount != 3 || cfg.MaxDB != 15 || cfg.Name != "redis" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestConfig_DefaultEndpointsAreIdentical(t *testing.T) {
	cfg := Config{Host: "cache", Port: 6380, DB: 4}
	cfg.ApplyDefaults()

	eps := cfg.Endpoints()
	if len(eps) != 3 {
		t.Fatalf("expected 3 endpoints, got %d", len(eps))
	}
	for i, ep := range eps {
		if ep != (ShardEndpoint{Host: "cache", Port: 6380, DB: 4}) {
			t.Errorf("endpoint %d = %+v", i, ep)
		}
	}
}

func TestConfig_ExplicitShards(t *testing.T) {
	cfg := Config{Shards: []ShardEndpoint{{Host: "a", Port: 1, DB: 0}, {Host: "b", Port: 2, DB: 1}}}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	eps := cfg.Endpoints()
	if len(eps) != 2 || eps[1].Host != "b" {
		t.Errorf("unexpected endpoints: %+v", eps)
	}
	eps[0].Host = "mutated"
	if cfg.Shards[0].Host != "a" {
		t.Error("Endpoints must return a copy")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		errMsg  string
		wantErr bool
	}{
		{"valid", Config{DB: 15}, "", false},
		{"db above max", Config{DB: 16}, "must be between 0 and 15", true},
		{"negative db", Config{DB: -1}, "must be between 0 and 15", true},
		{"raised max", Config{DB: 20, MaxDB: 31}, "", false},
		{"bad shard port", Config{Shards: []ShardEndpoint{{Host: "a", Port: 0}}}, "port", true},
		{"shard without host", Config{Shards: []ShardEndpoint{{Port: 6379}}}, "host", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.ApplyDefaults()
			err := tc.cfg.Validate()
			if tc.wantErr {
				if err == nil || !strings.Contains(err.Error(), tc.errMsg) {
					t.Fatalf("expected error containing %q, got %v", tc.errMsg, err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Pool(t *testing.T) {
	cfg := Config{TestOnBorrow: true}
	cfg.ApplyDefaults()
	pc := cfg.Pool()
	if pc.MaxIdle != DefaultMaxIdle || pc.MaxWait != DefaultMaxWait || !pc.TestOnBorrow {
		t.Errorf("unexpected pool config: %+v", pc)
	}
}
