package testsupport

import (
	"encoding/json"
	"os"
	"testing"
)

func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func LoadGolden(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// MustLoadFixture fails the test when path cannot be read.
func MustLoadFixture(t testing.TB, path string) []byte {
	t.Helper()
	data, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("load fixture %s: %v", path, err)
	}
	return data
}
