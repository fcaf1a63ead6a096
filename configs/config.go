package configs

import (
	"github.com/cockroachdb/errors"
	"github.com/mcuadros/go-defaults"
)

// DefaultTemplate .
const DefaultTemplate = `
log_level = "info"

# External interface used to reach the scheduler, usually the ethernet one.
# interface = "enp1s0f0"

dashboard_address = ":8787"
threads_per_worker = 1
silence_logs = true

# Restrict workers to these CUDA devices, e.g. "0,1,2,3". Empty means all.
cuda_visible_devices = ""

# Wire protocol, "tcp" or "ucx". InfiniBand and NVLink require "ucx".
protocol = "tcp"
enable_tcp_over_ucx = false
enable_infiniband = false
enable_nvlink = false
`

// Conf .
var Conf = newDefault()

// Config .
type Config struct {
	LogLevel string `toml:"log_level" default:"info" enum:"trace,debug,info,warn,error"`
	LogFile  string `toml:"log_file"`

	Interface          string `toml:"interface"`
	DashboardAddress   string `toml:"dashboard_address" default:":8787"`
	ThreadsPerWorker   int    `toml:"threads_per_worker" default:"1" range:"1-256"`
	SilenceLogs        bool   `toml:"silence_logs" default:"true"`
	CUDAVisibleDevices string `toml:"cuda_visible_devices"`
	Protocol           string `toml:"protocol" default:"tcp" enum:"tcp,ucx"`
	EnableTCPOverUCX   bool   `toml:"enable_tcp_over_ucx"`
	EnableInfiniBand   bool   `toml:"enable_infiniband"`
	EnableNVLink       bool   `toml:"enable_nvlink"`
}

func newDefault() Config {
	var conf Config
	defaults.SetDefaults(&conf)
	return conf
}

// Load merges the given config files over the defaults, then validates.
func (cfg *Config) Load(files []string) error {
	for _, file := range files {
		if err := DecodeFile(file, cfg); err != nil {
			return errors.Wrap(err, file)
		}
	}
	return cfg.Check()
}

// Check validates the enum and range constraints declared on the fields.
func (cfg *Config) Check() error {
	for _, field := range []string{"LogLevel", "ThreadsPerWorker", "Protocol"} {
		if err := newChecker(cfg, field).check(); err != nil {
			return errors.Wrapf(err, "invalid config field %s", field)
		}
	}
	return nil
}
