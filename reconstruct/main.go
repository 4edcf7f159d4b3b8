package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	sqlx "github.com/jmoiron/sqlx"
	reco "github.com/viking-exp/klreco/pkg"
)

var dbConn *sqlx.DB
var configuration reco.Configuration

var (
	logger         Logger
	VerbosityLevel int
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

func main() {
	if err := run(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	configFilename := flag.String("config", "", "Configuration file path")
	watch := flag.Bool("watch", false, "Keep watching the input directory for new files")
	flag.Parse()

	var err error
	configuration, err = reco.LoadConfiguration(*configFilename)
	if err != nil {
		return fmt.Errorf("Error reading configuration file: %w", err)
	}
	if *watch {
		configuration.Watch = true
	}
	reco.SetConfiguration(configuration)
	reco.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	info, err := os.Stat(configuration.FileIn)
	if err != nil {
		return fmt.Errorf("Error opening input: %w", err)
	}
	if err := checkInputMode(configuration.FileIn, info.IsDir(), configuration.Watch); err != nil {
		return err
	}

	if configuration.UseDB {
		dbConn, err = reco.ConnectToDatabase(configuration.DBDriver, configuration.User,
			configuration.Passwd, configuration.Host, configuration.DBName)
		if err != nil {
			return fmt.Errorf("Error connection to database: %w", err)
		}
		defer dbConn.Close()
	}

	classifier, err := reco.LoadLayout(configuration, dbConn)
	if err != nil {
		return fmt.Errorf("Error loading detector layout: %w", err)
	}

	proc, err := newProcessor(configuration, classifier, uuid.NewString())
	if err != nil {
		return err
	}
	if VerbosityLevel > 0 {
		logger.Info(fmt.Sprintf("Run ID: %s", proc.runID), "main")
	}

	if !info.IsDir() {
		return proc.processFile(configuration.FileIn, configuration.FileOut)
	}

	files, err := listInputFiles(configuration.FileIn)
	if err != nil {
		return fmt.Errorf("Error listing input directory: %w", err)
	}
	if VerbosityLevel > 0 {
		logger.Info(fmt.Sprintf("Number of input files: %d", len(files)), "main")
	}
	for _, filename := range files {
		if err := proc.processFile(filename, ""); err != nil {
			// A bad file must not stop the rest of the directory
			logger.Error(err.Error())
		}
	}

	if !configuration.Watch {
		return nil
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	settle := time.Duration(configuration.WatchSettleMs) * time.Millisecond
	return watchDirectory(ctx, configuration.FileIn, settle, proc)
}

// checkInputMode rejects watching a single file: only new files of a
// directory are picked up.
func checkInputMode(input string, isDir bool, watch bool) error {
	if watch && !isDir {
		return fmt.Errorf("watch mode needs an input directory, %s is a file", input)
	}
	return nil
}
