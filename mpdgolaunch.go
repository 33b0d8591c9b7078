package main


import (
  flag "github.com/spf13/pflag"
  log "github.com/sirupsen/logrus"
  "fmt"
  "os"
  "path/filepath"
  "strconv"
)

const (
  runtimeDirName = ".mpd"
  confFileName   = "mpd.conf"
  playlistsName  = "playlists"
  bindSockName   = "mpd.sock"
  musicDirName   = "Music"

  defaultMPDpath = "/usr/bin/mpd"
) // const


var (
  version = "dev"

  // Launch parameters, precedence CLI > config > default
  rootDir  string
  mpdPath  string
  musicDir string
  wsPort   int

  verbose bool
) // var


func main() {
  // ------------------------------------------------------------------
  // Flags
  // ------------------------------------------------------------------
  var (
    configFlag  string
    logPath     string
    spawnMode   bool
    showVersion bool
    showHelp    bool
  )

  flag.StringVar(&rootDir, "root", "", "runtime root <dir> (default: the binary's own directory)")
  flag.StringVar(&mpdPath, "mpdpath", "", "path to the mpd binary")
  flag.StringVar(&musicDir, "musicdir", "", "music library <dir> (default: ~/Music)")
  flag.StringVar(&configFlag, "config", "", "path to config file")
  flag.StringVar(&logPath, "log", "", "write logs to file instead of stderr")
  flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging")
  flag.BoolVar(&spawnMode, "spawn", false, "Supervise mpd as a child instead of exec")
  flag.IntVar(&wsPort, "wsport", 0, "spawn mode: WS status port (0 disables)")
  flag.BoolVar(&showVersion, "version", false, "Print version and exit")
  flag.BoolVar(&showHelp, "help", false, "Print help and exit")

  // ------------------------------------------------------------------
  // Parse flags ONCE
  // ------------------------------------------------------------------
  flag.Parse()

  // ------------------------------------------------------------------
  // Load + dump config
  // ------------------------------------------------------------------
  cfg := loadConfig(configFlag)
  dumpConfig(cfg)

  kv := parseConfig(cfg.data)

  // ------------------------------------------------------------------
  // Apply config values with precedence: CLI > config > default
  // ------------------------------------------------------------------

  if rootDir == "" {
    if v, ok := kv["root"]; ok && v != "" {
      rootDir = v
    } else {
      exe, err := os.Executable()
      if err != nil {
        log.Fatalf("cannot locate own binary: %v", err)
      }
      rootDir = filepath.Dir(exe)
    }
  }

  if mpdPath == "" {
    if v, ok := kv["mpdpath"]; ok && v != "" {
      mpdPath = v
    } else {
      mpdPath = defaultMPDpath
    }
  }

  if musicDir == "" {
    if v, ok := kv["musicdir"]; ok && v != "" {
      musicDir = v
    } else {
      // ~/Music is written into mpd.conf as-is; whether it exists is mpd's problem
      home, err := os.UserHomeDir()
      if err != nil {
        log.Fatalf("cannot determine home directory: %v", err)
      }
      musicDir = filepath.Join(home, musicDirName)
    }
  }

  if wsPort == 0 {
    if v, ok := kv["wsport"]; ok && v != "" {
      if n, err := strconv.Atoi(v); err == nil {
        wsPort = n
      }
    }
  }

  if v, ok := kv["log"]; ok && v != "" && logPath == "" {
    logPath = v
  }

  // ------------------------------------------------------------------
  // OPTIONAL: redirect logs if --log is set
  // MUST be before any log.Printf / log.Fatalf
  // ------------------------------------------------------------------
  if logPath != "" {
    f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
    if err != nil {
      log.Fatalf("failed to open log file %s: %v", logPath, err)
    }
    log.SetOutput(f)
  }

  // ------------------------------------------------------------------
  // Version / help
  // ------------------------------------------------------------------
  if showVersion {
    fmt.Printf("\nmpdgolaunch binary version %s\n\n", version)
    os.Exit(0)
  }

  if showHelp {
    fmt.Printf("\nmpdgolaunch binary version %s\n\n", version)
    fmt.Println("Usage: mpdgolaunch [flags] [mpd args...]")
    flag.PrintDefaults()
    return
  }

  // Everything positional is forwarded to mpd untouched
  extra := flag.Args()

  // ------------------------------------------------------------------
  // Spawn mode: same setup, mpd runs as a supervised child
  // ------------------------------------------------------------------
  if spawnMode {
    os.Exit(spawnDaemon(rootDir, musicDir, mpdPath, extra))
  }

  // ------------------------------------------------------------------
  // Default mode: reset, write conf, exec mpd in place
  // ------------------------------------------------------------------
  if err := launch(rootDir, musicDir, mpdPath, extra); err != nil {
    log.Fatalf("launch failed: %v", err)
  }
} // func main()
