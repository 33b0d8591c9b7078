package main


import (
  "fmt"
  "os"
  "path/filepath"
  "strings"
)

type configFile struct {
  path   string
  data   string
  exists bool
} // type configFile struct


// loadConfig loads the config file from a given path or defaults to ~/.config/mpdgolaunch.conf
func loadConfig(cliPath string) configFile {
  var path string

  if cliPath != "" {
    path = cliPath
  } else {
    home, err := os.UserHomeDir()
    if err != nil {
      return configFile{}
    }
    path = filepath.Join(home, ".config", "mpdgolaunch.conf")
  }

  cf := configFile{path: path}

  data, err := os.ReadFile(path)
  if err != nil {
    return cf
  }

  cf.exists = true
  cf.data = string(data)
  return cf
} // func loadConfig(cliPath string) configFile


// dumpConfig prints the config path and optionally its contents if verbose
func dumpConfig(cf configFile) {
  if !verbose {
    return
  }

  fmt.Fprintf(os.Stderr, "config path: %s\n", cf.path)

  if !cf.exists {
    fmt.Fprintln(os.Stderr, "config file: not found")
    return
  }

  fmt.Fprintln(os.Stderr, "config contents:")
  fmt.Fprintln(os.Stderr, "-----")
  fmt.Fprint(os.Stderr, cf.data)
  if !strings.HasSuffix(cf.data, "\n") {
    fmt.Fprintln(os.Stderr)
  }
  fmt.Fprintln(os.Stderr, "-----")
} // func dumpConfig(cf configFile)


// parseConfig parses key=value lines from a string into a map
func parseConfig(data string) map[string]string {
  cfg := make(map[string]string)

  for _, line := range strings.Split(data, "\n") {
    line = strings.TrimSpace(line)
    if line == "" || strings.HasPrefix(line, "#") {
      continue
    }

    k, v, ok := strings.Cut(line, "=")
    if !ok {
      continue
    }

    k = strings.TrimSpace(k)
    v = strings.TrimSpace(v)

    if k != "" {
      cfg[k] = v
    }
  }
  return cfg
} // func parseConfig(data string) map[string]string
