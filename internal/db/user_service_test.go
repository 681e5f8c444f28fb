package db

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"
)

var testDomains = []string{"etu.univ.fr", "univ.fr"}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return gdb
}

func TestRegisterUser(t *testing.T) {
	gdb := openTestDB(t)

	user, err := RegisterUser(gdb, "  Chloe@ETU.univ.fr ", "Chloé", testDomains)
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	if user.Email != "chloe@etu.univ.fr" {
		t.Errorf("email should be normalized, got %q", user.Email)
	}
	if user.ID == "" {
		t.Error("expected a generated uuid")
	}

	if _, err := RegisterUser(gdb, "chloe@etu.univ.fr", "Chloé", testDomains); err == nil {
		t.Error("duplicate registration should fail")
	}

	if _, err := RegisterUser(gdb, "intruder@gmail.com", "X", testDomains); err == nil {
		t.Error("registration outside allowed domains should fail")
	}
}

func TestGetOrCreateLocalUser(t *testing.T) {
	gdb := openTestDB(t)

	first, err := GetOrCreateLocalUser(gdb)
	if err != nil {
		t.Fatalf("failed to create local user: %v", err)
	}
	second, err := GetOrCreateLocalUser(gdb)
	if err != nil {
		t.Fatalf("failed to fetch local user: %v", err)
	}
	if first.ID != second.ID {
		t.Error("local user should be created once and reused")
	}
	if first.Email != LocalUserEmail {
		t.Errorf("local user email = %q", first.Email)
	}
}

func TestGetUserByID(t *testing.T) {
	gdb := openTestDB(t)

	user, err := RegisterUser(gdb, "theo@univ.fr", "Théo", testDomains)
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	found, err := GetUserByID(gdb, user.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if found.Email != "theo@univ.fr" {
		t.Errorf("looked up wrong user: %q", found.Email)
	}

	if _, err := GetUserByID(gdb, "00000000-0000-0000-0000-000000000000"); err == nil {
		t.Error("unknown id should fail")
	}
}
