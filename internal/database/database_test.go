package database

import (
	"net/url"
	"testing"

	"github.com/deppfellow/assignment-api/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Host:     "db.internal",
			Port:     5433,
			User:     "postgres",
			Password: "p@ss:word/",
			Name:     "assignments",
			SSLMode:  "disable",
		},
	}

	dsn := DSN(cfg)

	u, err := url.Parse(dsn)
	if err != nil {
		t.Fatalf("DSN is not a valid URL: %v", err)
	}
	if u.Host != "db.internal:5433" {
		t.Errorf("got host %q", u.Host)
	}
	if pw, _ := u.User.Password(); pw != "p@ss:word/" {
		t.Errorf("password not round-tripped: %q", pw)
	}
	if u.Path != "/assignments" {
		t.Errorf("got path %q", u.Path)
	}
	if u.Query().Get("sslmode") != "disable" {
		t.Errorf("got sslmode %q", u.Query().Get("sslmode"))
	}
}
