package main


import (
  "encoding/json"
  "strings"
  "testing"

  "github.com/fhs/gompd/v2/mpd"
)

func TestStatusPayload(t *testing.T) {
  st := mpd.Attrs{
    "state":          "play",
    "playlistlength": "12",
    "volume":         "80",
  }

  out, err := statusPayload(st)
  if err != nil {
    t.Fatalf("statusPayload failed: %v", err)
  }

  var back map[string]string
  if err := json.Unmarshal(out, &back); err != nil {
    t.Fatalf("payload is not valid JSON: %v", err)
  }
  for k, v := range st {
    if back[k] != v {
      t.Errorf("payload[%q] = %q, want %q", k, back[k], v)
    }
  }
} // func TestStatusPayload


func TestWSVerb_Unknown(t *testing.T) {
  reply := wsVerb("frobnicate", "/nonexistent.sock", nil)

  if !strings.HasPrefix(reply, "error: unknown verb") {
    t.Errorf("unknown verb reply = %q", reply)
  }
} // func TestWSVerb_Unknown


func TestWSVerb_PingNoDaemon(t *testing.T) {
  reply := wsVerb("ping", "/nonexistent.sock", nil)

  if !strings.HasPrefix(reply, "error:") {
    t.Errorf("ping with no daemon should error, got %q", reply)
  }
} // func TestWSVerb_PingNoDaemon
