package jsondiff_test

import (
	"fmt"
	"log"

	"github.com/erraggy/outdiff/diffconfig"
	"github.com/erraggy/outdiff/jsondiff"
)

// Example shows a structural diff with the default configuration
func Example() {
	result, err := jsondiff.Diff(
		`{"name":"api","version":1,"tags":["a","b"]}`,
		`{"name":"api","version":"2","tags":["a"],"owner":"ops"}`,
		diffconfig.Default(),
	)
	if err != nil {
		log.Fatal(err)
	}
	for _, c := range result.Changes {
		fmt.Println(c)
	}
	// Output:
	// ! $.version: 1 (number) -> "2" (string)
	// - $.tags[1]: "b"
	// + $.owner: "ops"
}

// Example_lcs aligns array elements instead of comparing them by position
func Example_lcs() {
	cfg, err := diffconfig.New(diffconfig.WithArrayStrategy(diffconfig.ArrayLCS))
	if err != nil {
		log.Fatal(err)
	}
	result, err := jsondiff.Diff(`[1,2,3,4]`, `[0,1,2,4]`, cfg)
	if err != nil {
		log.Fatal(err)
	}
	for _, c := range result.Changes {
		fmt.Println(c)
	}
	// Output:
	// + $[0]: 0
	// - $[2]: 3
}
