package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.JWT.ExpireHours != 2 {
		t.Errorf("JWT.ExpireHours = %d, want 2", cfg.JWT.ExpireHours)
	}
	if cfg.JWT.Secret != "" {
		t.Errorf("JWT.Secret = %q, want empty default", cfg.JWT.Secret)
	}
	if cfg.AI.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("AI.OpenAI.Model = %q, want gpt-4o-mini", cfg.AI.OpenAI.Model)
	}
}

func TestGetDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "sqlite enables foreign keys per connection",
			cfg:  DatabaseConfig{Driver: "sqlite", Path: "./chatbot.db"},
			want: "./chatbot.db?_foreign_keys=on",
		},
		{
			name: "sqlite path with existing params",
			cfg:  DatabaseConfig{Driver: "sqlite", Path: "file::memory:?cache=shared"},
			want: "file::memory:?cache=shared&_foreign_keys=on",
		},
		{
			name: "postgres builds dsn",
			cfg: DatabaseConfig{
				Driver: "postgres", Host: "localhost", Port: 5432,
				User: "postgres", Password: "pw", DBName: "chatbot_support", SSLMode: "disable",
			},
			want: "host=localhost port=5432 user=postgres password=pw dbname=chatbot_support sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.GetDSN(); got != tt.want {
				t.Errorf("GetDSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("CHATBOT_SERVER_PORT", "8080")
	t.Setenv("CHATBOT_JWT_SECRET", "from-env")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want env override 8080", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "from-env" {
		t.Errorf("JWT.Secret = %q, want env override", cfg.JWT.Secret)
	}
}
