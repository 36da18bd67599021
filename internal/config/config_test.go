package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "MAX_UPLOAD_BYTES", "TRANSFER_CONTACTS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DBPath != "statements.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if len(cfg.TransferContacts) != 0 {
		t.Errorf("TransferContacts = %v, want empty", cfg.TransferContacts)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("TRANSFER_CONTACTS", "asha, ravi ,,meera")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.MaxUploadBytes != 1024 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	want := []string{"asha", "ravi", "meera"}
	if len(cfg.TransferContacts) != len(want) {
		t.Fatalf("TransferContacts = %v, want %v", cfg.TransferContacts, want)
	}
	for i := range want {
		if cfg.TransferContacts[i] != want[i] {
			t.Errorf("TransferContacts[%d] = %q, want %q", i, cfg.TransferContacts[i], want[i])
		}
	}
}

func TestLoadInvalidSizeFallsBack(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "not a number")
	cfg := Load()
	if cfg.MaxUploadBytes != 10<<20 {
		t.Errorf("MaxUploadBytes = %d, want default", cfg.MaxUploadBytes)
	}
}
