package snapshot

import (
	"os"
	"testing"

	"github.com/yaron8/ops-dashboard/logi"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "snapshot-test-logs")
	if err != nil {
		panic(err)
	}
	if _, err := logi.NewLog(&logi.Config{LogDir: dir}); err != nil {
		panic(err)
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}
