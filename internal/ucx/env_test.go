package ucx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvAllDisabled(t *testing.T) {
	env := Env(Options{})
	assert.Empty(t, env)
}

func TestEnvTCPOnly(t *testing.T) {
	env := Env(Options{EnableTCP: true})
	assert.Equal(t, "tcp,sockcm,cuda_copy", env[EnvTLS])
	assert.Equal(t, "sockcm", env[EnvTLSPriority])
}

func TestEnvInfiniBandImpliesTCP(t *testing.T) {
	env := Env(Options{EnableInfiniBand: true})
	assert.Equal(t, "rc,tcp,sockcm,cuda_copy", env[EnvTLS])
	assert.Equal(t, "sockcm", env[EnvTLSPriority])
}

func TestEnvNVLinkImpliesTCP(t *testing.T) {
	env := Env(Options{EnableNVLink: true})
	assert.Equal(t, "tcp,sockcm,cuda_copy,cuda_ipc", env[EnvTLS])
	assert.Equal(t, "sockcm", env[EnvTLSPriority])
}

func TestEnvAllEnabled(t *testing.T) {
	env := Env(Options{EnableTCP: true, EnableInfiniBand: true, EnableNVLink: true})
	assert.Equal(t, "rc,tcp,sockcm,cuda_copy,cuda_ipc", env[EnvTLS])
}
