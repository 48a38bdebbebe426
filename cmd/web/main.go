package main

import (
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/assemblyline/internal/config"
)

//go:embed index.html
var htmlPage string

func main() {
	var cfg config.Web
	if err := config.ParseEnv(&cfg); err != nil {
		log.Fatal("config", "err", err)
	}

	page := renderPage(cfg)
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})

	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	log.Info("starting web server", "url", "http://"+addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", "err", err)
		os.Exit(1)
	}
}

// renderPage fills the connect command into the landing page.
func renderPage(cfg config.Web) string {
	command := "ssh " + cfg.SSHDisplayHost
	if cfg.SSHPort != "" && cfg.SSHPort != "22" {
		command = fmt.Sprintf("ssh -p %s %s", cfg.SSHPort, cfg.SSHDisplayHost)
	}
	return strings.NewReplacer(
		"{{.SSHHost}}", cfg.SSHDisplayHost,
		"{{.SSHCommand}}", command,
	).Replace(htmlPage)
}
