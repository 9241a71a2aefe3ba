// Package cmd implements the CLI application computing depreciation schedules.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/etnz/depreciation"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&scheduleCmd{}, "schedules")
	c.Register(&showCmd{}, "schedules")
	c.Register(&watchCmd{}, "schedules")

	c.Register(&lookupCmd{}, "database")

	c.Register(&serveCmd{}, "server")

	c.Register(&topicCmd{}, "help")
}

const (
	EnvCurrency     = "FAD_CURRENCY"
	EnvDSN          = "FAD_DSN"
	EnvKafkaBrokers = "FAD_KAFKA_BROKERS"
	EnvKafkaTopic   = "FAD_KAFKA_TOPIC"
	EnvVerbose      = "FAD_VERBOSE"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var currencyCode = flag.String("currency", "", "Currency of the amounts, sets the rounding subunit (default $"+EnvCurrency+" or "+depreciation.DefaultCurrency+")")
var dsn = flag.String("dsn", "", "PostgreSQL connection string of the schedule database (default $"+EnvDSN+")")
var kafkaBrokers = flag.String("brokers", "", "Comma separated Kafka brokers to publish schedules to (default $"+EnvKafkaBrokers+")")
var kafkaTopic = flag.String("topic", "", "Kafka topic to publish schedules to (default $"+EnvKafkaTopic+")")
var Verbose = flag.Bool("v", false, "verbose logging")

// LoadEnv loads the variables of the .env file of the working directory, if there is one.
// Variables already set in the environment take precedence.
func LoadEnv() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setting returns the flag value if set, else the environment variable 'env' if set, else fallback.
func setting(flagValue, env, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return fallback
}

// Currency returns the currency of the amounts.
func Currency() (depreciation.Currency, error) {
	return depreciation.ParseCurrency(setting(*currencyCode, EnvCurrency, depreciation.DefaultCurrency))
}

// DSN returns the connection string of the schedule database.
func DSN() (string, error) {
	v := setting(*dsn, EnvDSN, "")
	if v == "" {
		return "", fmt.Errorf("no database configured: use -dsn or set $%s", EnvDSN)
	}
	return v, nil
}

// Brokers returns the Kafka brokers to publish to.
func Brokers() ([]string, error) {
	v := setting(*kafkaBrokers, EnvKafkaBrokers, "")
	var brokers []string
	for _, b := range strings.Split(v, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil, fmt.Errorf("no Kafka broker configured: use -brokers or set $%s", EnvKafkaBrokers)
	}
	return brokers, nil
}

// Topic returns the Kafka topic to publish to, empty for the default one.
func Topic() string { return setting(*kafkaTopic, EnvKafkaTopic, "") }
