// Package script is the reusable skeleton behind the root scriptkit command:
// validate the input and output paths, lock the output, process the input
// into a result record, always clean up, and report an exit code.
package script
