// cmd/loom/main.go
package main

import (
	"fmt"
	"io"
	stdlog "log"
	"os"

	"github.com/wovenlab/loom/internal/app"
	"github.com/wovenlab/loom/internal/config"
	"github.com/wovenlab/loom/internal/logger"
)

func main() {
	flags := &config.Flags{}
	args := flags.ParseFlags()

	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, config.Version)
		return
	}

	cfg, err := config.LoadConfig(*flags.ConfigFilePath, flags)
	if err != nil {
		// The config is still usable (defaults plus whatever parsed), so
		// report the problem and carry on.
		stdlog.Printf("warning: %v", err)
	}

	logOutput, closeLog, err := openLogOutput(cfg.Logger.LogFilePath)
	if err != nil {
		stdlog.Fatalf("opening log file: %v", err)
	}
	defer closeLog()

	logger.Init(cfg.Logger, logOutput)

	filePath := ""
	if len(args) > 0 {
		filePath = args[0]
	}
	logger.Infof("starting %s %s, file=%q", config.AppName, config.Version, filePath)

	editor, err := app.New(filePath)
	if err != nil {
		logger.Errorf("initializing editor: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		os.Exit(1)
	}

	if err := editor.Run(); err != nil {
		logger.Errorf("editor exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		os.Exit(1)
	}

	logger.Infof("%s exited cleanly", config.AppName)
}

// openLogOutput resolves the configured log destination. Empty means no
// logging, "-" means stderr, anything else is an append-mode file.
func openLogOutput(path string) (io.Writer, func(), error) {
	switch path {
	case "":
		return io.Discard, func() {}, nil
	case "-":
		return os.Stderr, func() {}, nil
	default:
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	}
}
