// Package preflight validates that the host can run a script before it
// starts doing work.
//
// A Validator runs independent checks and keeps a tally of how many failed:
//   - Go runtime version (minimum major.minor)
//   - Operating system
//   - Commands on PATH, with alternatives
//   - Modules linked into the running binary
//   - Path existence, kind and write access
//   - Disk space
//   - Network reachability (warning only, never counted)
//
// Use ValidateSystem to run the standard sequence:
//
//	v := preflight.New(preflight.WithLogger(logger))
//	if !v.ValidateSystem(ctx, preflight.DefaultRequirements()) {
//	    // v.Errors() checks failed
//	}
//
// PromptWithTimeout asks a question that answers itself with a default when
// nobody responds, so unattended runs never block.
package preflight
