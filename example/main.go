// Example program demonstrating the taskweave library API.
//
// Run from a directory with a .taskweave/app.yml:
//
//	go run ./example/
//
// With remote mode (set GITHUB_TOKEN first):
//
//	GITHUB_TOKEN=ghp_xxx go run ./example/
package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/taskweave/go-taskweave/pkg/sdk"
)

func main() {
	localConfig()

	if os.Getenv("GITHUB_TOKEN") != "" {
		remoteConfig()
	}
}

func localConfig() {
	result, err := sdk.Load(sdk.Options{
		Dir: ".",
	})
	if err != nil {
		log.Fatalf("local resolution failed: %v", err)
	}

	printConfig("Local", result)
}

func remoteConfig() {
	result, err := sdk.LoadRemote(sdk.RemoteOptions{
		Owner: "taskweave",
		Repo:  "go-taskweave",
		Token: os.Getenv("GITHUB_TOKEN"),
		Ref:   "main",
	})
	if err != nil {
		log.Fatalf("remote resolution failed: %v", err)
	}

	printConfig("Remote", result)
}

func printConfig(label string, result *sdk.Result) {
	fmt.Printf("=== %s Configuration (profile %s) ===\n", label, result.Profile)

	keys := make([]string, 0, len(result.Values))
	for k := range result.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("%-40s %s\n", k, result.Values[k])
	}
	fmt.Println()
}
