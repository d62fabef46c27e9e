package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/lifelog/internal/constants"
)

func TestConnectionStringLifecycle(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://lifelog@localhost:5432/lifelog?sslmode=disable"
	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString() error = %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() error = %v", err)
	}
	if got != connStr {
		t.Errorf("GetConnectionString() = %q, want %q", got, connStr)
	}

	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() error = %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete error = %v, want ErrNotFound", err)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString(""); err == nil {
		t.Error("SetConnectionString(\"\") should fail")
	}
}

func TestResolveConnectionString(t *testing.T) {
	gokeyring.MockInit()
	if err := SetConnectionString("host=keyring dbname=lifelog"); err != nil {
		t.Fatal(err)
	}

	fromEnv := func(key string) string {
		if key == constants.EnvDBConnection {
			return "host=env dbname=lifelog"
		}
		return ""
	}
	got, err := ResolveConnectionString(fromEnv)
	if err != nil || got != "host=env dbname=lifelog" {
		t.Errorf("env resolution = (%q, %v)", got, err)
	}

	got, err = ResolveConnectionString(func(string) string { return "" })
	if err != nil || got != "host=keyring dbname=lifelog" {
		t.Errorf("keyring resolution = (%q, %v)", got, err)
	}
}

func TestIsAvailableWithMock(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("mock keyring should report available")
	}
}
