package config

// ExitCodeSuccess is returned when there was nothing to check or nothing was
// found. It is the only code that lets the commit through.
const ExitCodeSuccess = 0

// ExitCodeBlockingError should be returned when the guard could not finish.
// For example, the config is broken, the repo can't be opened or a staged
// file can't be read. The commit is rejected (fail closed).
const ExitCodeBlockingError = 1

// ExitCodeLeakFound should be returned when leaks are found.
const ExitCodeLeakFound = 3
