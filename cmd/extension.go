package cmd

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"github.com/etnz/depreciation"
)

// RunExtension attempts to find and execute an external fad-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "fad-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		if *Verbose {
			log.Printf("External command %q not found in PATH: %v", externalCmdName, err)
		}
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extensionEnv()...)

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv returns the global settings as environment variables, resolved
// the same way the builtin subcommands resolve them.
func extensionEnv() []string {
	env := []string{
		EnvCurrency + "=" + setting(*currencyCode, EnvCurrency, depreciation.DefaultCurrency),
		EnvVerbose + "=" + strconv.FormatBool(*Verbose),
	}
	if v := setting(*dsn, EnvDSN, ""); v != "" {
		env = append(env, EnvDSN+"="+v)
	}
	if v := setting(*kafkaBrokers, EnvKafkaBrokers, ""); v != "" {
		env = append(env, EnvKafkaBrokers+"="+v)
	}
	if v := Topic(); v != "" {
		env = append(env, EnvKafkaTopic+"="+v)
	}
	return env
}
