package main

import (
	"net"
	"path/filepath"
	"strings"
	"testing"

	"github.com/existflow/mandarina/internal/db"
)

func TestAddrFlag(t *testing.T) {
	f := rootCmd.Flags().Lookup("addr")
	if f == nil {
		t.Fatal("--addr flag not registered")
	}
	if f.DefValue != "" {
		t.Errorf("--addr default = %q, want empty so the config value applies", f.DefValue)
	}
}

func TestStartFailureReturnsError(t *testing.T) {
	home := t.TempDir()
	dbPath := filepath.Join(home, "tasks.db")
	t.Setenv("MANDARINA_HOME", home)
	t.Setenv("MANDARINA_DB_DRIVER", "sqlite")
	t.Setenv("MANDARINA_DB_DSN", dbPath)
	t.Setenv("MANDARINA_LOG_FILE", filepath.Join(home, "server.log"))

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer busy.Close()

	t.Cleanup(func() { addr = "" })
	rootCmd.SetArgs([]string{"--addr", busy.Addr().String()})
	err = rootCmd.Execute()
	if err == nil {
		t.Fatal("expected an error when the address is taken")
	}
	if !strings.Contains(err.Error(), "server failed") {
		t.Errorf("error = %v, want a server failure", err)
	}

	// The deferred close released the database, so it opens cleanly again.
	store, err := db.Open(db.DriverSQLite, dbPath)
	if err != nil {
		t.Fatalf("reopen database: %v", err)
	}
	store.Close()
}
