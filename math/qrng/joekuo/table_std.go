//go:build !sobolhighdim

package joekuo

import (
	_ "embed"
)

//go:embed joe-kuo-std.txt
var embeddedTable []byte
