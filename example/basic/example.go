package example

import (
	"embed"

	"github.com/vippsas/bytesearch"
)

//go:embed *.js
//go:embed */*.js
var jsfs embed.FS

var Corpus = bytesearch.MustInclude(bytesearch.Options{}, jsfs)
