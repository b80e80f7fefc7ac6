package rustcfg

// Exit codes of the rustcfg binary, for scripts that wrap it.
const (
	// ExitSuccess is returned even when a query produced no cfg information;
	// that case is reported as a warning on stderr.
	ExitSuccess = 0

	// ExitFailure means the output could not be written.
	ExitFailure = 1

	// ExitConfigError means invalid flags or an invalid rustcfg.yaml.
	ExitConfigError = 2

	// ExitEnvError means the environment is unusable, for example a
	// configured sysroot that does not exist.
	ExitEnvError = 3
)
