//go:build integration

package integration_test

import (
	"log"
	"os"
	"os/exec"
	"strings"
	"testing"
)

const binaryName = "datamanager"

var validConfig, buildVersion string

func init() {
	// read config file
	dat, err := os.ReadFile("../config.yaml")
	if err != nil {
		panic(err)
	}
	validConfig = string(dat)

	// read build_version.json file
	dat, err = os.ReadFile("../build_version.json")
	if err != nil {
		panic(err)
	}
	buildVersion = strings.TrimSpace(string(dat))
}

func buildAndRunTests(m *testing.M) int {
	cmd := exec.Command("go", "build", "-buildvcs=false", "-race", "-cover",
		"-ldflags", "-X main.BuildInfo="+buildVersion,
		"-o", binaryName, "../cmd/"+binaryName)
	if output, err := cmd.CombinedOutput(); err != nil {
		log.Printf("output: %s", output)
		log.Fatalf("error: %v", err)
	}
	defer os.Remove(binaryName)

	return m.Run()
}

func TestMain(m *testing.M) {
	os.Exit(buildAndRunTests(m))
}
