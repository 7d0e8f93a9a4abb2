package anchor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fulldump/biff"
)

func TestLoad_MissingFile(t *testing.T) {

	a := Load(filepath.Join(t.TempDir(), "Vault_Memory_Anchor.json"))

	biff.AssertFalse(a.Loaded())
	biff.AssertEqual(len(a.Snapshot()), 0)
}

func TestLoad_File(t *testing.T) {

	filename := filepath.Join(t.TempDir(), "Vault_Memory_Anchor.json")
	err := os.WriteFile(filename, []byte(`{"phase":"one","sealed":true}`), 0666)
	biff.AssertNil(err)

	a := Load(filename)

	biff.AssertTrue(a.Loaded())
	biff.AssertEqual(a.Snapshot()["phase"], "one")
}

func TestLoad_CorruptFile(t *testing.T) {

	filename := filepath.Join(t.TempDir(), "Vault_Memory_Anchor.json")
	err := os.WriteFile(filename, []byte("{broken"), 0666)
	biff.AssertNil(err)

	a := Load(filename)
	biff.AssertFalse(a.Loaded())
}

func TestUpdate_Merges(t *testing.T) {

	a := Load(filepath.Join(t.TempDir(), "missing.json"))

	biff.AssertNil(a.Update(map[string]any{"phase": "one"}))
	biff.AssertNil(a.Update(map[string]any{"sealed": true}))

	snapshot := a.Snapshot()
	biff.AssertEqual(snapshot["phase"], "one")
	biff.AssertEqual(snapshot["sealed"], true)

	biff.AssertNotNil(a.Update(nil))
}

func TestSnapshot_IsACopy(t *testing.T) {

	a := Load(filepath.Join(t.TempDir(), "missing.json"))
	biff.AssertNil(a.Update(map[string]any{"phase": "one"}))

	snapshot := a.Snapshot()
	snapshot["phase"] = "two"

	biff.AssertEqual(a.Snapshot()["phase"], "one")
}
