package database

import (
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"

	"shotbot/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.Database{Host: "db.local", Port: 3307, User: "bot", Password: "s3cret", Name: "shotbot"})
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("ParseDSN(%q): %v", dsn, err)
	}
	if mc.Addr != "db.local:3307" || mc.User != "bot" || mc.Passwd != "s3cret" || mc.DBName != "shotbot" {
		t.Errorf("parsed DSN = %+v", mc)
	}
	if !mc.ParseTime {
		t.Error("parseTime must be enabled")
	}
	if !strings.HasPrefix(dsn, "bot:s3cret@tcp(") {
		t.Errorf("dsn = %q", dsn)
	}
}

func TestShotRecordValidate(t *testing.T) {
	rec := NewShotRecord("center")
	if err := rec.Validate(); err == nil {
		t.Error("record without outcome must be rejected")
	}
	rec.Outcome = "triggered"
	if err := rec.Validate(); err != nil {
		t.Errorf("valid record rejected: %v", err)
	}
	rec.ID = "42"
	if err := rec.Validate(); err == nil {
		t.Error("non-uuid id must be rejected")
	}
	if NewShotRecord("lob").ID == NewShotRecord("lob").ID {
		t.Error("ids must be unique")
	}
}

func TestNullString(t *testing.T) {
	if nullString("").Valid {
		t.Error("empty string must be NULL")
	}
	if ns := nullString("capture failed"); !ns.Valid || ns.String != "capture failed" {
		t.Errorf("nullString = %+v", ns)
	}
}
