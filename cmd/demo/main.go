// Command demo declares a small door automaton and drives it with a
// scripted event sequence. The definition document and the script come
// from an optional demo.yaml picked up by viper; without one, built-in
// defaults run a push/push/close session.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/finitex/finitex"
)

const defaultDefinition = `
id: door
start: start
states:
  start:
    - on: push
      do: unlatch
      to: open
  open:
    - on: push
      to: open
    - on: close
      to: finish
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	viper.SetDefault("definition", defaultDefinition)
	viper.SetDefault("events", []string{"push", "push", "close"})
	viper.SetDefault("debug", false)

	viper.SetConfigName("demo")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	logger, err := newLogger(viper.GetBool("debug"))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	def, err := finitex.ParseDefinition([]byte(viper.GetString("definition")))
	if err != nil {
		return err
	}

	reg := finitex.NewRegistry()
	if err := reg.RegisterTransition("unlatch", func() {
		logger.Info("door unlatched")
	}); err != nil {
		return err
	}

	root, err := def.Build(reg, finitex.WithLogger(logger))
	if err != nil {
		return err
	}

	var events []finitex.Event
	for _, s := range viper.GetStringSlice("events") {
		events = append(events, finitex.Event(s))
	}

	logger.Info("run starting",
		zap.String("definition", def.ID),
		zap.Int("events", len(events)))

	end, err := finitex.Run(root, finitex.SliceSource(events...))
	if err != nil {
		return err
	}

	logger.Info("run finished", zap.String("state", string(end.State())))
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}
