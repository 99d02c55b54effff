//go:build sobolhighdim

package joekuo

import (
	_ "embed"
)

//go:embed joe-kuo-highdim.txt
var embeddedTable []byte
