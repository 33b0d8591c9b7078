package main


import (
  "github.com/fhs/gompd/v2/mpd"
  log "github.com/sirupsen/logrus"
  "fmt"
  "net"
  "os"
  "os/exec"
  "os/signal"
  "syscall"
  "time"
)

const (
  socketProbeStep = 100 * time.Millisecond
  socketProbeMax  = 15 * time.Second
) // const


/* ---------------- spawn mode ---------------- */

// spawnDaemon runs the same reset/emit sequence as launch, then keeps mpd
// as a supervised child instead of replacing the launcher. Termination
// signals are forwarded; the return value is the child's exit code.
func spawnDaemon(root, musicDir, mpdPath string, extra []string) int {
  runtime := runtimeDir(root)

  if err := resetRuntime(runtime); err != nil {
    log.Fatalf("[spawn] %v", err)
  }

  confPath, err := writeConf(runtime, musicDir)
  if err != nil {
    log.Fatalf("[spawn] %v", err)
  }

  argv := daemonArgv(mpdPath, confPath, extra)
  cmd := exec.Command(argv[0], argv[1:]...)
  cmd.Stdout = os.Stdout
  cmd.Stderr = os.Stderr

  if err := cmd.Start(); err != nil {
    log.Fatalf("[spawn] failed to start %s: %v", mpdPath, err)
  }
  log.Printf("[spawn] started %s (pid %d) with conf %s", mpdPath, cmd.Process.Pid, confPath)

  sock := bindSocket(runtime)
  if err := waitForSocket(sock, socketProbeMax); err != nil {
    // mpd may still come up later; supervision continues regardless
    log.Printf("[spawn] %v", err)
  } else {
    checkDaemon(sock)
    if wsPort > 0 {
      startWS(wsPort, sock, cmd.Process)
    }
  }

  sigs := make(chan os.Signal, 1)
  signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

  done := make(chan error, 1)
  go func() { done <- cmd.Wait() }()

  for {
    select {
    case s := <-sigs:
      log.Printf("[spawn] forwarding %v to pid %d", s, cmd.Process.Pid)
      if err := cmd.Process.Signal(s); err != nil {
        log.Printf("[spawn] signal failed: %v", err)
      }

    case err := <-done:
      if err == nil {
        log.Printf("[spawn] mpd exited cleanly")
        return 0
      }
      if ee, ok := err.(*exec.ExitError); ok {
        log.Printf("[spawn] mpd exited: %v", ee)
        return ee.ExitCode()
      }
      log.Printf("[spawn] wait failed: %v", err)
      return 1
    }
  }
} // func spawnDaemon()


// waitForSocket polls a unix socket until it accepts a connection or the
// deadline passes.
func waitForSocket(path string, max time.Duration) error {
  deadline := time.Now().Add(max)

  for {
    if conn, err := net.DialTimeout("unix", path, 500*time.Millisecond); err == nil {
      conn.Close()
      return nil
    }

    if time.Now().After(deadline) {
      return fmt.Errorf("socket %s not ready after %v", path, max)
    }

    time.Sleep(socketProbeStep)
  }
} // func waitForSocket(path string, max time.Duration) error


// checkDaemon connects over the mpd protocol and logs what came up.
func checkDaemon(sock string) {
  c, err := mpd.Dial("unix", sock)
  if err != nil {
    log.Printf("[spawn] mpd not answering on %s: %v", sock, err)
    return
  }
  defer c.Close()

  log.Printf("[spawn] connected to mpd at %s, protocol version %s", sock, c.Version())

  st, err := c.Status()
  if err != nil {
    log.Printf("[spawn] status failed: %v", err)
    return
  }

  if verbose {
    log.Printf("[spawn] mpd state=%s playlistlength=%s", st["state"], st["playlistlength"])
  }
} // func checkDaemon(sock string)
