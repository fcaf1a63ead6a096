// Package ucx renders the UCX transport environment for worker and
// scheduler processes. Transports are additive: InfiniBand and NVLink both
// ride on top of TCP-over-UCX, so enabling either implies it.
package ucx

// Environment variable names recognized by UCX.
const (
	EnvTLS         = "UCX_TLS"
	EnvTLSPriority = "UCX_SOCKADDR_TLS_PRIORITY"
	EnvNetDevices  = "UCX_NET_DEVICES"
)

// Options .
type Options struct {
	EnableTCP        bool
	EnableInfiniBand bool
	EnableNVLink     bool
}

// Enabled reports whether any UCX transport is requested.
func (opts Options) Enabled() bool {
	return opts.EnableTCP || opts.EnableInfiniBand || opts.EnableNVLink
}

// Env builds the environment variable mapping for the requested transports.
// With everything disabled the mapping is empty and UCX defaults apply.
func Env(opts Options) map[string]string {
	if !opts.Enabled() {
		return map[string]string{}
	}

	tls := "tcp,sockcm,cuda_copy"
	if opts.EnableInfiniBand {
		tls = "rc," + tls
	}
	if opts.EnableNVLink {
		tls += ",cuda_ipc"
	}

	return map[string]string{
		EnvTLS:         tls,
		EnvTLSPriority: "sockcm",
	}
}
