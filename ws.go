package main


import (
  "github.com/coder/websocket"
  "github.com/fhs/gompd/v2/mpd"
  log "github.com/sirupsen/logrus"
  "encoding/json"
  "fmt"
  "net/http"
  "os"
  "strings"
  "syscall"
)

/* ---------------- WS status endpoint ---------------- */

// startWS serves the spawn-mode status endpoint on /ws.
func startWS(port int, sock string, proc *os.Process) {
  mux := http.NewServeMux()
  mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
    wsHandler(w, r, sock, proc)
  })

  go func() {
    addr := fmt.Sprintf(":%d", port)
    log.Printf("[ws] listening on %s (/ws)", addr)
    if err := http.ListenAndServe(addr, mux); err != nil {
      log.Fatalf("[ws] server failed: %v", err)
    }
  }()
} // func startWS()


func wsHandler(w http.ResponseWriter, r *http.Request, sock string, proc *os.Process) {
  conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
    InsecureSkipVerify: true, // allow any origin
  })
  if err != nil {
    log.Printf("[ws] accept failed: %v", err)
    return
  }
  defer conn.Close(websocket.StatusNormalClosure, "done")

  for {
    _, msgBytes, err := conn.Read(r.Context())
    if err != nil {
      log.Printf("[ws] read error: %v", err)
      break
    }

    verb := strings.TrimSpace(string(msgBytes))
    reply := wsVerb(verb, sock, proc)
    if reply == "" {
      continue
    }

    if verbose {
      log.Printf("[ws] send frame: %q", reply)
    }
    if err := conn.Write(r.Context(), websocket.MessageText, []byte(reply)); err != nil {
      log.Printf("[ws] write error: %v", err)
      break
    }
  }
} // func wsHandler()


// wsVerb dispatches a single text verb from a WS client and returns the
// reply frame.
func wsVerb(verb, sock string, proc *os.Process) string {
  switch verb {

  case "ping":
    c, err := mpd.Dial("unix", sock)
    if err != nil {
      return fmt.Sprintf("error: %v", err)
    }
    defer c.Close()
    return fmt.Sprintf("OK mpd %s", c.Version())

  case "status":
    c, err := mpd.Dial("unix", sock)
    if err != nil {
      return fmt.Sprintf("error: %v", err)
    }
    defer c.Close()

    st, err := c.Status()
    if err != nil {
      return fmt.Sprintf("error: %v", err)
    }

    out, err := statusPayload(st)
    if err != nil {
      return fmt.Sprintf("error: %v", err)
    }
    return string(out)

  case "quit":
    log.Printf("[ws] quit requested, signalling mpd")
    if err := proc.Signal(syscall.SIGTERM); err != nil {
      return fmt.Sprintf("error: %v", err)
    }
    return "OK"

  default:
    return "error: unknown verb: " + verb
  }
} // func wsVerb(verb, sock string, proc *os.Process) string


// statusPayload flattens mpd status attributes into a JSON object.
func statusPayload(st mpd.Attrs) ([]byte, error) {
  return json.Marshal(map[string]string(st))
} // func statusPayload(st mpd.Attrs) ([]byte, error)
