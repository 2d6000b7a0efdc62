package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/talent-scout/internal/config"
	"github.com/riskibarqy/talent-scout/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "talent-scout-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{}, logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}

func TestStartPprofServer(t *testing.T) {
	srv, err := StartPprofServer(config.Config{}, logging.NewNop())
	if err != nil || srv != nil {
		t.Fatalf("expected no server when disabled, got %v %v", srv, err)
	}

	if _, err := StartPprofServer(config.Config{PprofEnabled: true, PprofAddr: ":8080", HTTPAddr: ":8080"}, logging.NewNop()); err == nil {
		t.Fatalf("expected error when pprof shares the api address")
	}
}

func TestStartPprofServer_BindsAndStops(t *testing.T) {
	srv, err := StartPprofServer(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0", HTTPAddr: ":8080"}, logging.NewNop())
	if err != nil {
		t.Fatalf("start pprof: %v", err)
	}

	resp, err := http.Get("http://" + srv.Addr + "/debug/pprof/cmdline")
	if err != nil {
		t.Fatalf("get cmdline: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from cmdline, got %d", resp.StatusCode)
	}

	if err := StopPprofServer(srv, time.Second); err != nil {
		t.Fatalf("stop pprof: %v", err)
	}
}

func TestUptraceDisabledReason(t *testing.T) {
	if got := uptraceDisabledReason(config.Config{UptraceEnabled: true}); got != "UPTRACE_DSN empty" {
		t.Fatalf("unexpected reason %q", got)
	}
	if got := uptraceDisabledReason(config.Config{UptraceEnabled: true, UptraceDSN: "https://token@api.uptrace.dev/1"}); got != "" {
		t.Fatalf("expected enabled config, got %q", got)
	}
}

func TestPyroscopeConfigTags(t *testing.T) {
	pc := pyroscopeConfig(config.Config{AppEnv: config.EnvProd, StorageDriver: config.StorageS3, PyroscopeAppName: "talent-scout-api"})
	if pc.Tags["env"] != config.EnvProd || pc.Tags["storage_driver"] != config.StorageS3 {
		t.Fatalf("unexpected tags %v", pc.Tags)
	}
	if len(pc.ProfileTypes) != len(pyroscopeProfiles) {
		t.Fatalf("expected every profile type to be enabled")
	}
}

func TestPprofMuxServesIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	newPprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from pprof index, got %d", rec.Code)
	}
}
