package dgx

// Option .
type Option func(*options)

type options struct {
	name             string
	iface            string
	dashboardAddress string
	threadsPerWorker int
	silenceLogs      bool
	visibleDevices   []int
	protocol         string
	enableTCPOverUCX bool
	enableInfiniBand bool
	enableNVLink     bool
}

func newOptions() *options {
	return &options{
		dashboardAddress: ":8787",
		threadsPerWorker: 1,
		silenceLogs:      true,
	}
}

// WithName overrides the generated cluster name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithInterface sets the external interface used to reach the scheduler,
// usually the ethernet one rather than InfiniBand.
func WithInterface(iface string) Option {
	return func(o *options) { o.iface = iface }
}

// WithDashboardAddress .
func WithDashboardAddress(addr string) Option {
	return func(o *options) { o.dashboardAddress = addr }
}

// WithThreadsPerWorker .
func WithThreadsPerWorker(n int) Option {
	return func(o *options) { o.threadsPerWorker = n }
}

// WithSilenceLogs .
func WithSilenceLogs(silence bool) Option {
	return func(o *options) { o.silenceLogs = silence }
}

// WithVisibleDevices restricts workers to the given CUDA device indices.
func WithVisibleDevices(devices []int) Option {
	return func(o *options) { o.visibleDevices = devices }
}

// WithProtocol selects the wire protocol, e.g. "tcp" or "ucx".
func WithProtocol(protocol string) Option {
	return func(o *options) { o.protocol = protocol }
}

// WithTCPOverUCX .
func WithTCPOverUCX(enable bool) Option {
	return func(o *options) { o.enableTCPOverUCX = enable }
}

// WithInfiniBand enables UCX InfiniBand support. Requires the "ucx"
// protocol and implies TCP over UCX.
func WithInfiniBand(enable bool) Option {
	return func(o *options) { o.enableInfiniBand = enable }
}

// WithNVLink enables UCX NVLink support. Requires the "ucx" protocol and
// implies TCP over UCX.
func WithNVLink(enable bool) Option {
	return func(o *options) { o.enableNVLink = enable }
}
