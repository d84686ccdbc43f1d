package status

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shirou/gopsutil/v3/process"
)

// WatcherSnapshot is the loop-level health the watcher reports through
// the server's hook.
type WatcherSnapshot struct {
	Ticks               int       `json:"ticks"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
	FailureThreshold    int       `json:"failure_threshold"`
	PlayersOnline       int       `json:"players_online"`
	LastTick            time.Time `json:"last_tick"`
}

type healthResponse struct {
	UptimeSeconds float64         `json:"uptime_seconds"`
	Watcher       WatcherSnapshot `json:"watcher"`
	Clients       int             `json:"ws_clients"`
	RSSBytes      uint64          `json:"rss_bytes,omitempty"`
	CPUPercent    float64         `json:"cpu_percent,omitempty"`
}

type Server struct {
	broadcaster *Broadcaster
	healthHook  func() WatcherSnapshot
	started     time.Time
	proc        *process.Process
}

func NewServer(broadcaster *Broadcaster) *Server {
	// Self-process handle for /healthz resource stats; nil just omits them.
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Printf("[status] process stats unavailable: %v", err)
		proc = nil
	}
	return &Server{
		broadcaster: broadcaster,
		started:     time.Now(),
		proc:        proc,
	}
}

// SetHealthHook wires the watcher's health snapshot into /healthz.
// Must be called before SetupRoutes.
func (s *Server) SetHealthHook(hook func() WatcherSnapshot) {
	s.healthHook = hook
}

func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", s.handleHealth)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: checkOrigin}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[status] ws upgrade error: %v", err)
		return
	}

	log.Printf("[status] client connected: %s", r.RemoteAddr)
	c := s.broadcaster.AddClient(conn)

	go func() {
		defer func() {
			s.broadcaster.RemoveClient(c)
			log.Printf("[status] client disconnected: %s", r.RemoteAddr)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		UptimeSeconds: time.Since(s.started).Seconds(),
		Clients:       s.broadcaster.ClientCount(),
	}
	if s.healthHook != nil {
		resp.Watcher = s.healthHook()
	}
	if s.proc != nil {
		if mem, err := s.proc.MemoryInfo(); err == nil {
			resp.RSSBytes = mem.RSS
		}
		if cpu, err := s.proc.CPUPercent(); err == nil {
			resp.CPUPercent = cpu
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// checkOrigin accepts same-host and localhost origins. The status
// endpoint is meant for an operator's own machine, not the open web.
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}
	host := parsed.Host
	if host == r.Host {
		return true
	}
	return strings.HasPrefix(host, "localhost") ||
		strings.HasPrefix(host, "127.0.0.1") ||
		strings.HasPrefix(host, "[::1]")
}

// ListenAndServe starts the status endpoint on addr.
func ListenAndServe(addr string, mux *http.ServeMux) error {
	log.Printf("[status] listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
