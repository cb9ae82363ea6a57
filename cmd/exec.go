package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"voyage-booking/config"
	"voyage-booking/internal/handlers"
	"voyage-booking/internal/report"
	"voyage-booking/internal/services"
	"voyage-booking/models"
	"voyage-booking/monitoring"
	"voyage-booking/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// ErrTerminated is returned after an invocation problem was reported on stdout.
var ErrTerminated = errors.New("program terminated")

const (
	msgArguments  = `ERROR: This program works exactly with two command line arguments, the first one is the path to the input file whereas the second one is the path to the output file. Sample usage can be as follows: "voyage-booking input.txt output.txt". Program is going to terminate!`
	msgUnreadable = `ERROR: This program cannot read from the "%s", either this program does not have read permission to read that file or file does not exist. Program is going to terminate!`
	msgUnwritable = `ERROR: This program cannot write to the "%s", please check the permissions to write that directory. Program is going to terminate!`
)

func Start() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return NewRootCmd(config.LoadConfig()).ExecuteContext(ctx)
}

// NewRootCmd builds the voyage-booking command. Flags override cfg.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "voyage-booking <input> <output>",
		Short:         "Process a voyage command file and write its transcript",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: cfg.SlogLevel(),
			})).With("environment", cfg.Environment))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, args, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "mirror the transcript to this Redis instance")
	flags.StringVar(&cfg.MetricsTextfile, "metrics-file", cfg.MetricsTextfile, "write Prometheus metrics to this file")
	flags.StringVar(&cfg.PDFReportPath, "pdf", cfg.PDFReportPath, "also render the transcript as a PDF")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")

	return cmd
}

func run(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer) error {
	if len(args) != 2 {
		fmt.Fprintln(stdout, msgArguments)
		return ErrTerminated
	}
	inputPath, outputPath := args[0], args[1]

	data, err := os.ReadFile(inputPath)
	if err != nil {
		slog.Debug("Failed to read input", "path", inputPath, "error", err)
		fmt.Fprintf(stdout, msgUnreadable+"\n", inputPath)
		return ErrTerminated
	}

	out, err := os.Create(outputPath)
	if err != nil {
		slog.Debug("Failed to create output", "path", outputPath, "error", err)
		fmt.Fprintf(stdout, msgUnwritable+"\n", outputPath)
		return ErrTerminated
	}
	defer out.Close()

	sessionID := uuid.NewString()
	output := bufio.NewWriter(out)

	var (
		mirrors    []report.Sink
		transcript *report.MemorySink
	)
	if cfg.PDFReportPath != "" {
		transcript = report.NewMemorySink()
		mirrors = append(mirrors, transcript)
	}
	if cfg.RedisURL != "" {
		if client := connectRedis(ctx, cfg); client != nil {
			defer client.Close()
			breaker := utils.NewCircuitBreaker("redis-transcript", uint32(max(cfg.BreakerMaxFailures, 1)), cfg.BreakerTimeout)
			mirrors = append(mirrors, report.NewRedisSink(client, sessionID, cfg.TranscriptTTL, breaker))
		}
	}

	var notifier *services.EventNotifier
	if cfg.NotificationsEnabled() {
		publisher := services.NewPubNubPublisher(cfg.PubNubPublishKey, cfg.PubNubSubscribeKey, cfg.PubNubUserID)
		notifier = services.NewEventNotifier(publisher, cfg.EventChannel, sessionID)
	}

	voyageService := services.NewVoyageService(models.NewRegistry())
	handler := handlers.NewCommandHandler(
		voyageService,
		report.NewTeeSink(report.NewWriterSink(output), mirrors...),
		monitoring.NewMonitor(cfg.EnableMetrics),
		notifier,
	)

	runErr := handlers.NewSession(sessionID, handler).Run(ctx, strings.Split(string(data), "\n"))
	if err := output.Flush(); err != nil && runErr == nil {
		runErr = fmt.Errorf("write %s: %w", outputPath, err)
	}
	if runErr != nil {
		return fmt.Errorf("session %s: %w", sessionID, runErr)
	}

	if transcript != nil {
		if err := writePDF(cfg.PDFReportPath, sessionID, transcript.Lines()); err != nil {
			slog.Error("Failed to write PDF transcript", "path", cfg.PDFReportPath, "error", err)
		} else {
			slog.Info("PDF transcript written", "path", cfg.PDFReportPath)
		}
	}

	if cfg.EnableMetrics && cfg.MetricsTextfile != "" {
		if err := monitoring.WriteTextfile(cfg.MetricsTextfile); err != nil {
			slog.Error("Failed to export metrics", "path", cfg.MetricsTextfile, "error", err)
		} else {
			slog.Info("Metrics exported", "path", cfg.MetricsTextfile)
		}
	}

	return nil
}

// connectRedis returns nil when Redis is unreachable; the run continues without a mirror.
func connectRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	client, err := utils.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Warn("Transcript mirror disabled", "error", err)
		return nil
	}
	return client
}

func writePDF(path, sessionID string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return report.WritePDF(f, report.PDFMeta{SessionID: sessionID, GeneratedAt: time.Now()}, lines)
}
