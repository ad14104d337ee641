// cmd/contractcheck validates a published data.json against the output
// contract. Run it in CI before committing the artifact: the web page
// and the e-ink template both read data.json by field name, so a shape
// regression here breaks two renderers at once.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/matthewbaird/litterstats/internal/contract"
	"github.com/matthewbaird/litterstats/internal/publish"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("contractcheck: ")

	path := filepath.Join("site", publish.DataFile)
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("reading %s: %v", path, err)
	}

	if err := contract.Validate(data); err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Printf("contractcheck: OK: %s matches the output contract\n", path)
}
