package backup

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeStoreFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "atomicday.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write store file: %v", err)
	}
	return path
}

func TestCreateBackupCopiesFile(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStoreFile(t, dir, `{"entries":{}}`)

	mgr := NewManager(storePath, nil)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if string(data) != `{"entries":{}}` {
		t.Errorf("backup content = %q", data)
	}

	if filepath.Dir(backupPath) != filepath.Join(dir, BackupDirName) {
		t.Errorf("backup landed in %s", filepath.Dir(backupPath))
	}
}

func TestCreateBackupMissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "nope.json"), nil)
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error for missing store")
	}
}

func TestListBackupsSortsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStoreFile(t, dir, "{}")
	mgr := NewManager(storePath, nil)

	backupDir := mgr.GetBackupDir()
	if err := os.MkdirAll(backupDir, 0700); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	names := []string{
		BackupFilePrefix + "20260825-0900" + BackupFileSuffix,
		BackupFilePrefix + "20260827-0900" + BackupFileSuffix,
		BackupFilePrefix + "20260826-0900" + BackupFileSuffix,
		"unrelated.txt",
	}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(backupDir, n), []byte("x"), 0600); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("listed %d backups, want 3", len(backups))
	}
	if !backups[0].Timestamp.After(backups[1].Timestamp) {
		t.Error("backups not sorted newest first")
	}
}

func TestRotationKeepsMaxBackups(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStoreFile(t, dir, "{}")
	mgr := NewManager(storePath, nil)

	backupDir := mgr.GetBackupDir()
	if err := os.MkdirAll(backupDir, 0700); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < MaxBackups+3; i++ {
		name := BackupFilePrefix + base.AddDate(0, 0, i).Format("20060102-1504") + BackupFileSuffix
		if err := os.WriteFile(filepath.Join(backupDir, name), []byte("x"), 0600); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	// A fresh backup triggers rotation
	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != MaxBackups {
		t.Errorf("rotation left %d backups, want %d", len(backups), MaxBackups)
	}
}

func TestRestoreBackupReplacesStore(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStoreFile(t, dir, `{"state":"current"}`)

	mgr := NewManager(storePath, nil)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if err := os.WriteFile(storePath, []byte(`{"state":"modified"}`), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	data, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != `{"state":"current"}` {
		t.Errorf("store after restore = %q", data)
	}

	// The pre-restore state was backed up before being replaced
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	found := false
	for _, b := range backups {
		content, err := os.ReadFile(b.Path)
		if err == nil && string(content) == `{"state":"modified"}` {
			found = true
		}
	}
	if !found {
		t.Error("no safety backup of the pre-restore state")
	}
}

func TestRestoreRejectsCorruptBackup(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStoreFile(t, dir, `{"state":"current"}`)
	mgr := NewManager(storePath, nil)

	backupDir := mgr.GetBackupDir()
	if err := os.MkdirAll(backupDir, 0700); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	corrupt := filepath.Join(backupDir, BackupFilePrefix+"20260827-0900"+BackupFileSuffix)
	if err := os.WriteFile(corrupt, []byte("not json at all"), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if err := mgr.RestoreBackup(corrupt); err == nil {
		t.Fatal("expected error restoring a corrupt backup")
	}

	// The live store is untouched and no safety backup was made
	data, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != `{"state":"current"}` {
		t.Errorf("store after rejected restore = %q", data)
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("rejected restore left %d backups, want only the corrupt file", len(backups))
	}
}

func TestRestoreMissingBackup(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStoreFile(t, dir, "{}")
	mgr := NewManager(storePath, nil)

	if err := mgr.RestoreBackup(filepath.Join(dir, "missing.bak")); err == nil {
		t.Error("expected error for missing backup file")
	}
}

// memStreamer fakes a streaming store for backup/restore.
type memStreamer struct {
	data []byte
}

func (m *memStreamer) Backup(w io.Writer) error {
	_, err := w.Write(m.data)
	return err
}

func (m *memStreamer) Restore(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.data = data
	return nil
}

func TestStreamerBackupAndRestore(t *testing.T) {
	dir := t.TempDir()
	storeDir := filepath.Join(dir, "data")
	if err := os.MkdirAll(storeDir, 0700); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	s := &memStreamer{data: []byte("snapshot-v1")}
	mgr := NewManager(storeDir, s)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	content, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !bytes.Equal(content, []byte("snapshot-v1")) {
		t.Errorf("stream backup content = %q", content)
	}

	s.data = []byte("snapshot-v2")
	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if !bytes.Equal(s.data, []byte("snapshot-v1")) {
		t.Errorf("restore did not load the snapshot: %q", s.data)
	}
}

func TestParseBackupTimestampWithCounter(t *testing.T) {
	name := fmt.Sprintf("%s20260827-090005-2%s", BackupFilePrefix, BackupFileSuffix)
	ts, ok := parseBackupTimestamp(name)
	if !ok {
		t.Fatal("failed to parse counter-suffixed name")
	}
	want := time.Date(2026, 8, 27, 9, 0, 5, 0, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("timestamp = %v, want %v", ts, want)
	}
}
