package cmd

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestExtensionEnv(t *testing.T) {
	t.Setenv(EnvCurrency, "")
	t.Setenv(EnvDSN, "postgres://localhost/fad")
	t.Setenv(EnvKafkaBrokers, "")
	t.Setenv(EnvKafkaTopic, "")

	env := extensionEnv()
	for _, want := range []string{EnvCurrency + "=EUR", EnvVerbose + "=false", EnvDSN + "=postgres://localhost/fad"} {
		if !slices.Contains(env, want) {
			t.Errorf("extensionEnv() = %v, want it to contain %q", env, want)
		}
	}
	for _, v := range env {
		if strings.HasPrefix(v, EnvKafkaBrokers+"=") {
			t.Errorf("extensionEnv() passes unset %s: %v", EnvKafkaBrokers, env)
		}
	}
}

func TestExtensionMechanism(t *testing.T) {
	tempDir := t.TempDir()

	helloCmdSource := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("args=%%v\n", os.Args[1:])
}
`, EnvCurrency, EnvCurrency, EnvVerbose, EnvVerbose)

	helloCmdPath := filepath.Join(tempDir, "fad-hello")
	srcFile := helloCmdPath + ".go"
	if err := os.WriteFile(srcFile, []byte(helloCmdSource), 0644); err != nil {
		t.Fatalf("Failed to write fad-hello source: %v", err)
	}
	cmd := exec.Command("go", "build", "-o", helloCmdPath, srcFile)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile fad-hello: %v", err)
	}
	log.Printf("Compiled fad-hello to %s", helloCmdPath)

	fadBinaryPath := filepath.Join(tempDir, "fad")
	cmd = exec.Command("go", "build", "-o", fadBinaryPath, "../fad")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile fad binary: %v", err)
	}

	fadCmd := exec.Command(fadBinaryPath, "-currency", "USD", "-v", "hello", "world")
	fadCmd.Dir = tempDir
	fadCmd.Env = []string{"PATH=" + tempDir + string(os.PathListSeparator) + os.Getenv("PATH")}

	var stdout, stderr bytes.Buffer
	fadCmd.Stdout = &stdout
	fadCmd.Stderr = &stderr
	if err := fadCmd.Run(); err != nil {
		t.Fatalf("fad command failed: %v\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
	}

	output := stdout.String()
	for _, want := range []string{EnvCurrency + "=USD", EnvVerbose + "=true", "args=[world]"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, but got:\n%s", want, output)
		}
	}
}
