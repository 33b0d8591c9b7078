package main


import (
  log "github.com/sirupsen/logrus"
  "fmt"
  "os"
  "path/filepath"
  "strings"
  "syscall"
)

// execDaemon is syscall.Exec, swappable in tests so nothing actually
// replaces the test process.
var execDaemon = syscall.Exec


/* ---------------- runtime setup ---------------- */

// runtimeDir returns the scratch directory holding all generated state
// for one daemon instance.
func runtimeDir(root string) string {
  return filepath.Join(root, runtimeDirName)
} // func runtimeDir(root string) string


// bindSocket returns the unix socket path mpd is told to bind to.
func bindSocket(runtime string) string {
  return filepath.Join(runtime, bindSockName)
} // func bindSocket(runtime string) string


// resetRuntime wipes the runtime directory, whatever its prior state, and
// recreates it with an empty playlists subdirectory.
func resetRuntime(runtime string) error {
  if err := os.RemoveAll(runtime); err != nil {
    return fmt.Errorf("failed to clear runtime dir %s: %w", runtime, err)
  }

  if err := os.MkdirAll(filepath.Join(runtime, playlistsName), 0755); err != nil {
    return fmt.Errorf("failed to create runtime dir %s: %w", runtime, err)
  }

  return nil
} // func resetRuntime(runtime string) error


// renderConf formats the mpd.conf directives for a runtime directory.
// Values go in verbatim; the output carries nothing time-varying, so two
// renders with the same inputs are byte-identical.
func renderConf(runtime, musicDir string) string {
  var b strings.Builder

  fmt.Fprintf(&b, "bind_to_address \"%s\"\n", filepath.Join(runtime, bindSockName))
  fmt.Fprintf(&b, "# pid_file \"%s\"\n", filepath.Join(runtime, "mpd.pid"))
  fmt.Fprintf(&b, "db_file \"%s\"\n", filepath.Join(runtime, "mpd.db"))
  fmt.Fprintf(&b, "state_file \"%s\"\n", filepath.Join(runtime, "mpdstate"))
  fmt.Fprintf(&b, "playlist_directory \"%s\"\n", filepath.Join(runtime, playlistsName))
  fmt.Fprintf(&b, "music_directory \"%s\"\n", musicDir)

  return b.String()
} // func renderConf(runtime, musicDir string) string


// writeConf renders and writes mpd.conf into the runtime directory,
// returning the conf path.
func writeConf(runtime, musicDir string) (string, error) {
  confPath := filepath.Join(runtime, confFileName)

  if err := os.WriteFile(confPath, []byte(renderConf(runtime, musicDir)), 0644); err != nil {
    return "", fmt.Errorf("failed to write %s: %w", confPath, err)
  }

  return confPath, nil
} // func writeConf(runtime, musicDir string) (string, error)


// daemonArgv builds the mpd argument vector: foreground flag, generated
// conf path, then caller-supplied args unchanged and in order.
func daemonArgv(mpdPath, confPath string, extra []string) []string {
  argv := []string{mpdPath, "--no-daemon", confPath}
  return append(argv, extra...)
} // func daemonArgv(mpdPath, confPath string, extra []string) []string


// launch runs the full reset/emit/exec sequence. On success it never
// returns: the launcher process becomes mpd.
func launch(root, musicDir, mpdPath string, extra []string) error {
  runtime := runtimeDir(root)

  if err := resetRuntime(runtime); err != nil {
    return err
  }

  confPath, err := writeConf(runtime, musicDir)
  if err != nil {
    return err
  }

  argv := daemonArgv(mpdPath, confPath, extra)
  if verbose {
    log.Printf("execing %s with argv %q", mpdPath, argv)
  }

  return execDaemon(mpdPath, argv, os.Environ())
} // func launch(root, musicDir, mpdPath string, extra []string) error
