// Package shared holds code used by tests across the module.
//
// The testutil subpackage provides a capturing slog handler so that tests
// can assert on the log lines a component emits:
//
//	logger, handler := testutil.NewTestLogger(t)
//	runner, _ := pipeline.NewRunner(opts, logger)
//	runner.Run(ctx)
//	assert.True(t, handler.ContainsMessage("file skipped"))
//
// Nothing in this package may be imported from non-test code.
package shared
