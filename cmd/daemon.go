package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ARK-Community/AutoBillTracker/internal/config"
	"github.com/ARK-Community/AutoBillTracker/internal/daemon"
	"github.com/ARK-Community/AutoBillTracker/internal/store"
)

type daemonRuntimeState struct {
	PID       int       `json:"pid"`
	Addr      string    `json:"addr"`
	StartedAt time.Time `json:"started_at"`
	StorePath string    `json:"store_path"`
}

var (
	flagDaemonAddr     string
	flagDaemonInterval time.Duration
	flagDaemonDetach   bool
	flagDaemonPIDFile  string
	flagDaemonLogFile  string
	flagDaemonChild    bool
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run a local bill status service with HTTP/SSE endpoints",
	RunE:  runDaemon,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon process and API status",
	RunE:  runDaemonStatus,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running daemon",
	RunE:  runDaemonStop,
}

func init() {
	defaultPID := filepath.Join(config.DataDir(), "autobilld.pid")
	defaultLog := filepath.Join(config.DataDir(), "autobilld.log")

	daemonCmd.PersistentFlags().StringVar(&flagDaemonAddr, "addr", "", "HTTP listen address (default from config)")
	daemonCmd.PersistentFlags().DurationVar(&flagDaemonInterval, "interval", 0, "Polling interval (default from config)")
	daemonCmd.PersistentFlags().StringVar(&flagDaemonPIDFile, "pid-file", defaultPID, "PID file path")
	daemonCmd.PersistentFlags().StringVar(&flagDaemonLogFile, "log-file", defaultLog, "Log file path for detached mode")

	daemonCmd.Flags().BoolVar(&flagDaemonDetach, "detach", false, "Run daemon as a background process")
	daemonCmd.Flags().BoolVar(&flagDaemonChild, "child", false, "Internal: mark detached child process")
	_ = daemonCmd.Flags().MarkHidden("child")

	daemonCmd.AddCommand(daemonStatusCmd)
	daemonCmd.AddCommand(daemonStopCmd)
	rootCmd.AddCommand(daemonCmd)
}

func daemonSettings(cfg config.Config) (addr string, interval time.Duration) {
	addr = cfg.Daemon.Addr
	if flagDaemonAddr != "" {
		addr = flagDaemonAddr
	}
	interval = time.Duration(cfg.Daemon.PollIntervalSec) * time.Second
	if flagDaemonInterval > 0 {
		interval = flagDaemonInterval
	}
	return addr, interval
}

func runDaemon(_ *cobra.Command, _ []string) error {
	if flagDaemonDetach && flagDaemonChild {
		return errors.New("invalid daemon launch mode")
	}

	if flagDaemonDetach {
		return startDaemonDetached()
	}

	return runDaemonForeground()
}

func runDaemonForeground() error {
	if err := ensureDaemonNotRunning(flagDaemonPIDFile); err != nil {
		return err
	}

	cfg := loadConfig()
	addr, interval := daemonSettings(cfg)

	be, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = be.Close() }()

	state := daemonRuntimeState{
		PID:       os.Getpid(),
		Addr:      addr,
		StartedAt: time.Now(),
		StorePath: cfg.StorePath(),
	}
	if err := writeDaemonState(flagDaemonPIDFile, state); err != nil {
		return err
	}
	defer func() { _ = os.Remove(flagDaemonPIDFile) }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("  autobill daemon listening on http://%s\n", addr)

	svc := daemon.New(daemon.Config{
		Store:    be,
		Interval: interval,
		Addr:     addr,
	})
	return svc.Run(ctx)
}

func startDaemonDetached() error {
	if err := ensureDaemonNotRunning(flagDaemonPIDFile); err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	args := filterDetachArg(os.Args[1:])
	args = append(args, "--child")

	if err := os.MkdirAll(filepath.Dir(flagDaemonLogFile), 0o750); err != nil {
		return fmt.Errorf("create daemon log directory: %w", err)
	}

	logf, err := os.OpenFile(flagDaemonLogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open daemon log file: %w", err)
	}
	defer func() { _ = logf.Close() }()

	child := exec.Command(exe, args...)
	child.Stdout = logf
	child.Stderr = logf
	child.Stdin = nil
	child.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := child.Start(); err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}

	fmt.Printf("  Daemon started (pid %d), log at %s\n", child.Process.Pid, flagDaemonLogFile)
	return nil
}

func filterDetachArg(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == "--detach" {
			continue
		}
		out = append(out, a)
	}
	return out
}

func ensureDaemonNotRunning(pidFile string) error {
	state, err := readDaemonState(pidFile)
	if err != nil {
		return nil // no state file or unreadable, treat as not running
	}
	if processAlive(state.PID) {
		return fmt.Errorf("daemon already running (pid %d, %s)", state.PID, state.Addr)
	}
	_ = os.Remove(pidFile)
	return nil
}

func writeDaemonState(pidFile string, state daemonRuntimeState) error {
	if err := os.MkdirAll(filepath.Dir(pidFile), 0o750); err != nil {
		return fmt.Errorf("create daemon directory: %w", err)
	}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return os.WriteFile(pidFile, data, 0o600)
}

func readDaemonState(pidFile string) (daemonRuntimeState, error) {
	var state daemonRuntimeState
	data, err := os.ReadFile(pidFile)
	if err != nil {
		return state, err
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return state, err
	}
	if state.PID <= 0 {
		return state, errors.New("pid file has no pid")
	}
	return state, nil
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}

func runDaemonStatus(_ *cobra.Command, _ []string) error {
	state, err := readDaemonState(flagDaemonPIDFile)
	if err != nil {
		fmt.Println("  Daemon: not running")
		return nil
	}
	if !processAlive(state.PID) {
		fmt.Printf("  Daemon: stale pid file (pid %d gone)\n", state.PID)
		return nil
	}

	fmt.Printf("  Daemon: running (pid %d) on http://%s since %s\n",
		state.PID, state.Addr, state.StartedAt.Format(time.RFC3339))

	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get("http://" + state.Addr + "/v1/status")
	if err != nil {
		fmt.Printf("  API: unreachable (%v)\n", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	var status daemon.Status
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		fmt.Printf("  API: bad response (%v)\n", err)
		return nil
	}

	fmt.Printf("  Polls: %d (every %ds), last %s\n",
		status.PollCount, status.PollIntervalSec, status.LastPollAt.Format(time.Kitchen))
	fmt.Printf("  Bills: %d tracked, %d unpaid ($%s), %d overdue, %d due soon\n",
		status.Summary.Bills, status.Summary.Unpaid, status.Summary.UnpaidTotal,
		status.Summary.Overdue, status.Summary.DueSoon)
	if status.LastError != "" {
		fmt.Printf("  Last error: %s\n", status.LastError)
	}
	return nil
}

func runDaemonStop(_ *cobra.Command, _ []string) error {
	state, err := readDaemonState(flagDaemonPIDFile)
	if err != nil {
		fmt.Println("  Daemon: not running")
		return nil
	}
	if !processAlive(state.PID) {
		_ = os.Remove(flagDaemonPIDFile)
		fmt.Println("  Daemon: not running (cleaned stale pid file)")
		return nil
	}

	proc, err := os.FindProcess(state.PID)
	if err != nil {
		return err
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("stop daemon: %w", err)
	}

	fmt.Printf("  Sent SIGTERM to daemon (pid %d)\n", state.PID)
	return nil
}
