package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testConfigYAML = `# test config
database:
  host: db.local
  port: 5433
  user: app
  password: secret
  database: table_order

rabbitmq:
  host: mq.local
  port: 5672
  user: guest
  password: guest

server:
  port: 8080

board:
  api_url: "http://api.local:8080"
  poll_interval_seconds: 5
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfigYAML), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Database.Host != "db.local" {
		t.Errorf("expected database.host db.local, got %q", cfg.Database.Host)
	}
	if cfg.Database.Port != 5433 {
		t.Errorf("expected database.port 5433, got %d", cfg.Database.Port)
	}
	if cfg.RabbitMQ.Port != 5672 {
		t.Errorf("expected rabbitmq.port 5672, got %d", cfg.RabbitMQ.Port)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected server.port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Board.APIURL != "http://api.local:8080" {
		t.Errorf("expected board.api_url http://api.local:8080, got %q", cfg.Board.APIURL)
	}
	if cfg.Board.PollIntervalSeconds != 5 {
		t.Errorf("expected board.poll_interval_seconds 5, got %d", cfg.Board.PollIntervalSeconds)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	minimal := "database:\n  host: localhost\nrabbitmq:\n  host: localhost\n"
	if err := os.WriteFile(path, []byte(minimal), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("expected default server port 3000, got %d", cfg.Server.Port)
	}
	if cfg.Board.PollIntervalSeconds != 3 {
		t.Errorf("expected default poll interval 3, got %d", cfg.Board.PollIntervalSeconds)
	}
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host: "localhost", Port: 5432, User: "app", Password: "pw", Database: "table_order",
		},
	}

	want := "postgres://app:pw@localhost:5432/table_order?sslmode=disable"
	if got := cfg.DatabaseURL(); got != want {
		t.Errorf("DatabaseURL() = %q, want %q", got, want)
	}
}
