package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("VERITAS_TEST_MODE") == "" {
			_ = os.Setenv("VERITAS_TEST_MODE", "1")
		}
	})
}
