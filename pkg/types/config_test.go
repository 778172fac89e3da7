package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", DataDir: "/tmp/data"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "oracle", DataDir: "/tmp/data"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:    "valid sqlite config",
			config:  Config{Backend: BackendSQLite, DataDir: "/tmp/data"},
			wantErr: nil,
		},
		{
			name:    "sqlite with empty DataDir is valid at config level",
			config:  Config{Backend: BackendSQLite, DataDir: ""},
			wantErr: nil,
		},
		{
			name:    "memory backend needs no parameters",
			config:  Config{Backend: BackendMemory},
			wantErr: nil,
		},
		{
			name:    "postgres without dsn returns ErrPostgresDSNEmpty",
			config:  Config{Backend: BackendPostgres},
			wantErr: ErrPostgresDSNEmpty,
		},
		{
			name: "postgres with unknown driver returns ErrPostgresDriverUnknown",
			config: Config{Backend: BackendPostgres, Postgres: PostgresConfig{
				DSN: "postgres://localhost/catalog", Driver: "mysql",
			}},
			wantErr: ErrPostgresDriverUnknown,
		},
		{
			name: "postgres with default driver",
			config: Config{Backend: BackendPostgres, Postgres: PostgresConfig{
				DSN: "postgres://localhost/catalog",
			}},
			wantErr: nil,
		},
		{
			name: "postgres with lib/pq driver",
			config: Config{Backend: BackendPostgres, Postgres: PostgresConfig{
				DSN: "postgres://localhost/catalog", Driver: PostgresDriverPq,
			}},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestPostgresDriverName(t *testing.T) {
	if got := (PostgresConfig{}).DriverName(); got != PostgresDriverPgx {
		t.Errorf("default driver = %q, want %q", got, PostgresDriverPgx)
	}
	if got := (PostgresConfig{Driver: PostgresDriverPq}).DriverName(); got != PostgresDriverPq {
		t.Errorf("driver = %q, want %q", got, PostgresDriverPq)
	}
}
