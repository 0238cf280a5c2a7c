// Package framework contains the test registry that response handlers use to declare
// and run tests against an HTTP response.
//
// The general model is:
//
// 1. The host (for instance the player package) creates a new Registry for every
// session. There is no shared default instance, so nothing registered in one
// session can leak into another.
//
// 2. The response handler registers named tests with Register. Each test is a
// function receiving an opaque run context, usually the response.
//
// 3. The host calls Run with the run context. Tests run one at a time in the order
// they were registered; every outcome is written to the registry's output Logger,
// and the failures are returned as an ordered list.
package framework
