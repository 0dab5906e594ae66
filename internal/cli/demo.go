package cli

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"inspect-cli/internal/anyval"
	"inspect-cli/internal/archive"
	"inspect-cli/internal/config"
	"inspect-cli/internal/credstore"
	"inspect-cli/internal/kvstore"
	"inspect-cli/internal/logbuf"
	"inspect-cli/internal/menu"
)

const demoVersion = "1.4.2 (87)"

// demoPanel is the host application the standalone binary inspects: it
// seeds a settings store and a credential store, captures its own log
// output, and wires everything into one menu tree. Embedders build the
// same shape against their real state.
type demoPanel struct {
	menu       *menu.Menu
	kv         kvstore.Store
	creds      *credstore.MemoryStore
	classifier anyval.Classifier
	logs       *logbuf.Set
	logDir     string
	logger     *zap.Logger
}

func newDemoPanel(cfg *config.Config) (*demoPanel, error) {
	kv, err := kvstore.OpenSQLite(cfg.StorePath, cfg.Domain)
	if err != nil {
		return nil, err
	}

	p := &demoPanel{
		kv:         kv,
		creds:      demoCredStore(),
		classifier: anyval.NewClassifier(archive.Gob{}),
		logs:       logbuf.NewSet(),
		logDir:     cfg.LogDir,
	}

	p.logs.Attach(logbuf.NewFilteredBuffer("All Output", "", ""))
	p.logs.Attach(logbuf.NewFilteredBuffer("Network", "network", ""))
	p.logs.Attach(logbuf.NewFilteredBuffer("Errors", "", "error"))
	p.logger = zap.New(logbuf.NewCaptureCore(p.logs, zapcore.DebugLevel))

	p.seedSettings()
	p.menu = p.buildMenu()

	p.logger.Info("panel opened")
	return p, nil
}

// seedSettings writes defaults for keys the menu binds, without clobbering
// values from earlier runs.
func (p *demoPanel) seedSettings() {
	defaults := map[string]anyval.Value{
		"verboseLogging": anyval.Bool(false),
		"requestTimeout": anyval.Number(30),
		"environment":    anyval.Number(0),
		"apiBaseURL":     anyval.Text("https://api.example.com/v2"),
		"lastLaunch":     anyval.Timestamp(time.Now()),
		"sessionToken":   anyval.Bytes([]byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02}),
	}
	for k, v := range defaults {
		if _, ok := p.kv.Get(k); !ok {
			_ = p.kv.Set(k, v)
		}
	}
}

func demoCredStore() *credstore.MemoryStore {
	st := credstore.NewMemoryStore()
	st.Add(credstore.ClassGenericPassword, map[string]anyval.Value{
		"acct":   anyval.Text("alice"),
		"svce":   anyval.Text("api.example.com"),
		"v_Data": anyval.Bytes([]byte("s3cr3t-token")),
		"pdmn":   anyval.Text("ak"),
		"sync":   anyval.Bool(false),
	})
	st.Add(credstore.ClassInternetPassword, map[string]anyval.Value{
		"acct": anyval.Text("deploy-bot"),
		"srvr": anyval.Text("git.example.com"),
		"ptcl": anyval.Text("htps"),
		"atyp": anyval.Text("httb"),
	})
	st.Add(credstore.ClassKey, map[string]anyval.Value{
		"acct": anyval.Text("signing-key"),
		"type": anyval.Text("42"),
		"pdmn": anyval.Text("aku"),
	})
	return st
}

func (p *demoPanel) buildMenu() *menu.Menu {
	cfgPath, _ := config.Path()

	general := menu.Section{
		ID:    "general",
		Title: "General",
		Items: []menu.Item{
			menu.NewBoundToggle("verboseLogging", "Verbose Logging", "verboseLogging"),
			menu.NewBoundStepper("requestTimeout", "Request Timeout (s)", "requestTimeout", 5, 120, 5),
			menu.NewBoundPicker("environment", "Environment", []string{"Production", "Staging", "Dev"}, "environment"),
		},
	}

	experiments := menu.Section{
		ID:          "experiment",
		Title:       "Active Experiment",
		MultiChoice: true,
		Items: []menu.Item{
			menu.NewMultiChoice("exp.none", "None", true),
			menu.NewMultiChoice("exp.payments", "Payments v2", false),
			menu.NewMultiChoice("exp.onboarding", "New Onboarding", false),
		},
	}

	info := menu.Section{
		ID:    "about",
		Title: "About",
		Items: []menu.Item{
			menu.NewInfo("version", "Version", demoVersion),
			menu.NewInfo("goVersion", "Go Version", runtime.Version()),
			menu.NewInfo("configPath", "Config Path", cfgPath),
		},
	}

	actions := menu.Section{
		ID:    "actions",
		Title: "Actions",
		Items: []menu.Item{
			menu.NewAction("ping", "Ping API"),
			menu.NewAction("report", "Generate Report"),
			menu.NewAction("dumpEnv", "Dump Environment"),
			menu.NewSubSectionItems("advanced", "Advanced",
				menu.NewAction("resetSeeds", "Re-seed Demo Data"),
				menu.NewInfo("pid", "Process", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
			),
		},
	}

	return &menu.Menu{
		Title:               "Inspect",
		Sections:            []menu.Section{general, experiments, info, actions},
		IncludeBuiltInTools: true,
	}
}

func (p *demoPanel) ToggleChanged(id string, on bool) {
	p.logger.Info("toggle changed", zap.String("id", id), zap.Bool("on", on))
}

func (p *demoPanel) StepperChanged(id string, value float64) {
	p.logger.Info("stepper changed", zap.String("id", id), zap.Float64("value", value))
}

func (p *demoPanel) MultiChoiceChanged(id, sectionID string, selected bool) {
	if selected {
		_ = p.kv.Set("activeExperiment", anyval.Text(id))
	}
	p.logger.Info("experiment selected", zap.String("id", id), zap.String("section", sectionID))
}

func (p *demoPanel) PickerChanged(id string, index int) {
	p.logger.Info("picker changed", zap.String("id", id), zap.Int("index", index))
}

func (p *demoPanel) ActionSelected(id string) *menu.ActionResult {
	switch id {
	case "ping":
		p.logger.Named("network").Info("GET https://api.example.com/v2/ping 204 No Content")
		return nil
	case "report":
		return menu.TextResult(p.report())
	case "dumpEnv":
		return menu.ValueResult(anyval.Map{
			"os":      anyval.Text(runtime.GOOS),
			"arch":    anyval.Text(runtime.GOARCH),
			"cpus":    anyval.Number(float64(runtime.NumCPU())),
			"version": anyval.Text(demoVersion),
		})
	case "resetSeeds":
		p.seedSettings()
		p.logger.Warn("demo data re-seeded")
		return nil
	default:
		p.logger.Error("unknown action", zap.String("id", id))
		return nil
	}
}

func (p *demoPanel) report() string {
	var b strings.Builder
	b.WriteString("# Status Report\n\n")
	fmt.Fprintf(&b, "Generated %s.\n\n", time.Now().Format("2006-01-02 15:04:05"))
	b.WriteString("## Runtime\n\n")
	fmt.Fprintf(&b, "- Version: %s\n", demoVersion)
	fmt.Fprintf(&b, "- Go: %s\n", runtime.Version())
	fmt.Fprintf(&b, "- Goroutines: %d\n", runtime.NumGoroutine())
	return b.String()
}

// LogSources merges in-process capture buffers with *.log files from the
// configured directory.
func (p *demoPanel) LogSources() []logbuf.Source {
	sources := p.logs.Sources()
	if files, err := logbuf.FileSources(p.logDir); err == nil {
		sources = append(sources, files...)
	}
	return sources
}
