package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	conf := newDefault()
	assert.Equal(t, "info", conf.LogLevel)
	assert.Equal(t, ":8787", conf.DashboardAddress)
	assert.Equal(t, 1, conf.ThreadsPerWorker)
	assert.Equal(t, "tcp", conf.Protocol)
	assert.True(t, conf.SilenceLogs)
	assert.False(t, conf.EnableInfiniBand)
	assert.Nil(t, conf.Check())
}

func TestDecodeDefaultTemplate(t *testing.T) {
	conf := newDefault()
	assert.Nil(t, Decode(DefaultTemplate, &conf))
	assert.Nil(t, conf.Check())
	assert.Equal(t, ":8787", conf.DashboardAddress)
}

func TestDecodeOverrides(t *testing.T) {
	conf := newDefault()
	raw := `
interface = "enp1s0f0"
protocol = "ucx"
threads_per_worker = 4
enable_infiniband = true
cuda_visible_devices = "0,1,2,3"
`
	assert.Nil(t, Decode(raw, &conf))
	assert.Nil(t, conf.Check())
	assert.Equal(t, "enp1s0f0", conf.Interface)
	assert.Equal(t, "ucx", conf.Protocol)
	assert.Equal(t, 4, conf.ThreadsPerWorker)
	assert.True(t, conf.EnableInfiniBand)
	assert.Equal(t, "0,1,2,3", conf.CUDAVisibleDevices)
}

func TestCheckRejectsBadValues(t *testing.T) {
	conf := newDefault()
	conf.Protocol = "quic"
	assert.NotNil(t, conf.Check())

	conf = newDefault()
	conf.ThreadsPerWorker = 0
	assert.NotNil(t, conf.Check())

	conf = newDefault()
	conf.LogLevel = "verbose"
	assert.NotNil(t, conf.Check())
}

func TestEncodeRoundTrip(t *testing.T) {
	conf := newDefault()
	conf.Interface = "ib0"

	raw, err := Encode(&conf)
	assert.Nil(t, err)

	var decoded Config
	assert.Nil(t, Decode(raw, &decoded))
	assert.Equal(t, conf, decoded)
}

func TestLoadFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "dask-cuda.toml")
	assert.Nil(t, os.WriteFile(file, []byte(`protocol = "ucx"`), 0644))

	conf := newDefault()
	assert.Nil(t, conf.Load([]string{file}))
	assert.Equal(t, "ucx", conf.Protocol)
	// Untouched fields keep their defaults.
	assert.Equal(t, 1, conf.ThreadsPerWorker)

	assert.NotNil(t, conf.Load([]string{filepath.Join(t.TempDir(), "absent.toml")}))
}
