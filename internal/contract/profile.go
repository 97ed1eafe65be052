package contract

// ProfileConfig holds profiling configuration.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig enables profiling when a file prefix was supplied.
func ProcessProfilingConfig(p *ProfileConfig, prefix string) error {
	p.Enabled = prefix != ""
	p.Prefix = prefix
	return nil
}
