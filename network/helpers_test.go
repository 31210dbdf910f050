package network_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lexfrei/go-unipy/connection"
	"github.com/lexfrei/go-unipy/internal/testutil"
	"github.com/lexfrei/go-unipy/network"
	"github.com/lexfrei/go-unipy/network/testdata"
	"github.com/lexfrei/go-unipy/observability"
)

const (
	devicesPath   = "/proxy/network/api/s/default/stat/device"
	systemCfgPath = "/proxy/network/api/s/default/stat/device/f0:9f:c2:00:00:01"
	rulesPath     = "/proxy/network/api/s/default/rest/firewallrule"
)

type logEntry struct {
	msg    string
	fields map[string]any
}

// recordingLogger keeps warnings for assertions.
type recordingLogger struct {
	mu       sync.Mutex
	warnings []logEntry
}

func (l *recordingLogger) Debug(string, ...observability.Field) {}
func (l *recordingLogger) Info(string, ...observability.Field)  {}
func (l *recordingLogger) Error(string, ...observability.Field) {}

func (l *recordingLogger) Warn(msg string, fields ...observability.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := logEntry{msg: msg, fields: make(map[string]any, len(fields))}
	for _, f := range fields {
		entry.fields[f.Key] = f.Value
	}
	l.warnings = append(l.warnings, entry)
}

//nolint:ireturn // Logger interface
func (l *recordingLogger) With(...observability.Field) observability.Logger { return l }

func (l *recordingLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, 0, len(l.warnings))
	for _, w := range l.warnings {
		out = append(out, w.msg)
	}

	return out
}

func (l *recordingLogger) find(msg string) []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []logEntry
	for _, w := range l.warnings {
		if w.msg == msg {
			out = append(out, w)
		}
	}

	return out
}

func newTestService(t *testing.T, opts ...network.Option) (*network.Service, *testutil.Controller, *recordingLogger) {
	t.Helper()

	ctrl := testutil.NewController(t)

	conn, err := connection.New(ctrl.URL(), testutil.Username, testutil.Password)
	require.NoError(t, err)

	logger := &recordingLogger{}
	opts = append([]network.Option{network.WithLogger(logger)}, opts...)

	return network.New(conn, opts...), ctrl, logger
}

// handleFirewall registers the fixtures FirewallChains needs.
func handleFirewall(t *testing.T, ctrl *testutil.Controller) {
	t.Helper()

	ctrl.HandleJSON(rulesPath, 200, testdata.LoadFixture(t, "firewall/rules.json"))
	ctrl.HandleJSON(devicesPath, 200, testdata.LoadFixture(t, "devices/list.json"))
	ctrl.HandleJSON(systemCfgPath, 200, testdata.LoadFixture(t, "devices/system_cfg.json"))
}
